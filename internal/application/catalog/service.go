package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/provider"
)

// Service keeps a local copy of the provider's product catalog so checkout
// can name and price products without a provider round trip.
type Service struct {
	gateway provider.Gateway
	catalog order.CatalogProductRepository
	logger  *zap.Logger
}

// NewService creates a catalog service
func NewService(gateway provider.Gateway, catalog order.CatalogProductRepository, logger *zap.Logger) *Service {
	return &Service{gateway: gateway, catalog: catalog, logger: logger}
}

// Sync pulls the provider catalog and upserts every product locally.
// Returns the number of products synced.
func (s *Service) Sync(ctx context.Context) (int, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, p := range products {
		if err := s.syncProduct(ctx, p); err != nil {
			s.logger.Warn("skipping catalog product",
				zap.Int64("provider_product_id", p.ID),
				zap.Error(err))
			continue
		}
		synced++
	}

	s.logger.Info("catalog synced",
		zap.Int("products", synced),
		zap.Int("skipped", len(products)-synced))

	return synced, nil
}

// List returns the locally synced catalog
func (s *Service) List(ctx context.Context) ([]order.CatalogProduct, error) {
	return s.catalog.FindAll(ctx)
}

// Get returns a synced product by its provider product ID
func (s *Service) Get(ctx context.Context, providerProductID int64) (*order.CatalogProduct, error) {
	return s.catalog.FindByProviderProductID(ctx, providerProductID)
}

func (s *Service) syncProduct(ctx context.Context, p provider.Product) error {
	variants := make([]order.ProductVariant, 0, len(p.Variants))
	basePrice := decimal.Zero
	for _, v := range p.Variants {
		variants = append(variants, order.ProductVariant{
			ID:           v.ID,
			Name:         v.Name,
			Size:         v.Size,
			Color:        v.Color,
			Price:        v.RetailPrice,
			Availability: v.Availability,
		})
		if basePrice.IsZero() || v.RetailPrice.LessThan(basePrice) {
			basePrice = v.RetailPrice
		}
	}

	existing, err := s.catalog.FindByProviderProductID(ctx, p.ID)
	switch {
	case err == nil:
		existing.Refresh(p.Name, p.Description, basePrice, variants)
		return s.catalog.Upsert(ctx, existing)
	case errors.Is(err, order.ErrCatalogProductNotFound):
		product, err := order.NewCatalogProduct(p.ID, p.Name, p.Description, basePrice, variants)
		if err != nil {
			return err
		}
		return s.catalog.Upsert(ctx, product)
	default:
		return err
	}
}
