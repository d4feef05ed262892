// Package provider defines the contract this system requires from the
// print-fulfillment provider. The HTTP implementation lives in
// infrastructure/fulfillment; application code depends only on this package.
package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// Mockup render task statuses reported by the provider
const (
	MockupTaskPending   = "pending"
	MockupTaskCompleted = "completed"
	MockupTaskFailed    = "failed"
)

// MockupTask is a snapshot of a mockup render task
type MockupTask struct {
	TaskKey    string
	Status     string
	MockupURLs []string
	// Error carries the provider's failure message when Status is failed
	Error string
}

// FirstMockupURL returns the first rendered mockup image URL, or ""
func (t *MockupTask) FirstMockupURL() string {
	if len(t.MockupURLs) == 0 {
		return ""
	}
	return t.MockupURLs[0]
}

// Address is a shipping destination in the provider's format
type Address struct {
	Name        string
	Address1    string
	Address2    string
	City        string
	StateCode   string
	CountryCode string
	Zip         string
}

// RateItem is a line item for a shipping-rate quote
type RateItem struct {
	VariantID int64
	Quantity  int
}

// Rate is a single shipping-rate option
type Rate struct {
	ID       string
	Name     string
	Rate     decimal.Decimal
	Currency string
}

// OrderItem is a line item of an order submission
type OrderItem struct {
	VariantID int64
	Quantity  int
	FileURL   string
}

// RetailCosts are the customer-facing amounts attached to an order submission
type RetailCosts struct {
	Currency string
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// OrderRequest is an order submission to the provider
type OrderRequest struct {
	Recipient   Address
	Items       []OrderItem
	RetailCosts RetailCosts
}

// OrderResult is the provider's acknowledgement of a submitted order
type OrderResult struct {
	ID     int64
	Status string
}

// Shipment is a package dispatched for an order
type Shipment struct {
	TrackingNumber string
	TrackingURL    string
}

// OrderSnapshot is the provider's current view of an order
type OrderSnapshot struct {
	ID        int64
	Status    string
	Shipments []Shipment
}

// ProductVariant is a sellable variation in the provider's catalog
type ProductVariant struct {
	ID           int64
	Name         string
	Size         string
	Color        string
	RetailPrice  decimal.Decimal
	Availability string
}

// Product is a catalog product definition from the provider
type Product struct {
	ID          int64
	Name        string
	Description string
	Variants    []ProductVariant
}

// Gateway is the typed client contract over the fulfillment provider's API.
// Implementations classify responses but never retry; rate-limit and auth
// failures propagate to the caller.
type Gateway interface {
	// CreateMockupTask submits a render task and returns its task key
	CreateMockupTask(ctx context.Context, imageURL string, productID, variantID int64) (string, error)
	// GetMockupTask fetches the current state of a render task
	GetMockupTask(ctx context.Context, taskKey string) (*MockupTask, error)
	// ShippingRates quotes shipping options for a destination and items
	ShippingRates(ctx context.Context, addr Address, items []RateItem) ([]Rate, error)
	// CreateOrder submits a confirmed order for production
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
	// GetOrder fetches the provider's view of an order
	GetOrder(ctx context.Context, fulfillmentOrderID int64) (*OrderSnapshot, error)
	// ListProducts fetches the store's catalog product definitions
	ListProducts(ctx context.Context) ([]Product, error)
}
