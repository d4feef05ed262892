package order

import (
	"context"
	"time"

	"github.com/podstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrMockupNotFound is returned when a mockup context is missing or expired.
// It is surfaced distinctly so clients can prompt the customer to start over
// rather than treating it as a generic failure.
var ErrMockupNotFound = shared.NewDomainError("MOCKUP_NOT_FOUND", "Mockup not found or expired")

// MockupContext holds everything captured at mockup-generation time that
// order creation needs later. It lives in an expiring store between the two
// requests, which may be serviced by different processes.
type MockupContext struct {
	ID                string          `json:"id"`
	AffiliateCode     string          `json:"affiliate_code,omitempty"`
	ProductID         int64           `json:"product_id"`
	VariantID         int64           `json:"variant_id"`
	ImageURL          string          `json:"image_url"`
	MockupImageURL    string          `json:"mockup_image_url"`
	ProductName       string          `json:"product_name"`
	VariantName       string          `json:"variant_name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	EstimatedShipping decimal.Decimal `json:"estimated_shipping"`
	ThirdPartyAppName string          `json:"third_party_app_name,omitempty"`
	ThirdPartyOrderID string          `json:"third_party_order_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// MockupStore is an expiring key-value store for pending mockup contexts.
// Implementations must return ErrMockupNotFound for missing or expired keys.
// The store does not enforce exactly-once consumption; the order service
// deletes the context only after a successful order creation.
type MockupStore interface {
	Put(ctx context.Context, mc *MockupContext, ttl time.Duration) error
	Get(ctx context.Context, id string) (*MockupContext, error)
	Delete(ctx context.Context, id string) error
}
