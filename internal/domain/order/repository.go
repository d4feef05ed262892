package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomOrderRepository persists custom orders.
// Save returns shared.ErrAlreadyExists when the order number is taken;
// uniqueness is enforced by the store, not by callers pre-checking.
type CustomOrderRepository interface {
	Save(ctx context.Context, order *CustomOrder) error
	Update(ctx context.Context, order *CustomOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*CustomOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*CustomOrder, error)
	// FindByFulfillmentOrderID looks an order up by the provider's order ID,
	// used when routing inbound webhook events
	FindByFulfillmentOrderID(ctx context.Context, fulfillmentOrderID int64) (*CustomOrder, error)
}

// CommissionRepository persists affiliate commissions
type CommissionRepository interface {
	Save(ctx context.Context, commission *AffiliateCommission) error
	Update(ctx context.Context, commission *AffiliateCommission) error
	FindByOrderID(ctx context.Context, customOrderID uuid.UUID) (*AffiliateCommission, error)
	TotalForAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
	UnpaidTotalForAccount(ctx context.Context, accountID int64) (decimal.Decimal, error)
}

// AccountDirectory resolves accounts for commission attribution.
// The account system itself is an external collaborator.
type AccountDirectory interface {
	FindByID(ctx context.Context, id int64) (*Account, error)
}

// CatalogProductRepository persists the synced provider catalog
type CatalogProductRepository interface {
	Upsert(ctx context.Context, product *CatalogProduct) error
	FindByProviderProductID(ctx context.Context, providerProductID int64) (*CatalogProduct, error)
	FindAll(ctx context.Context) ([]CatalogProduct, error)
}
