package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/podstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of a custom order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Fulfillment status values reported by the provider. The provider is free to
// report other submission statuses (e.g. "draft", "inprocess"); these are the
// ones this system reacts to.
const (
	FulfillmentStatusShipped  = "shipped"
	FulfillmentStatusReturned = "returned"
	FulfillmentStatusFailed   = "failed"
	FulfillmentStatusCanceled = "canceled"
)

// ShippingAddress holds the recipient address for a custom order
type ShippingAddress struct {
	RecipientName string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	Zip           string
	Country       string
	Phone         string
}

// Validate checks that all required address fields are present.
// Returns field-level messages so the caller can surface them directly.
func (a *ShippingAddress) Validate() error {
	var missing []string
	if a.RecipientName == "" {
		missing = append(missing, "recipient_name")
	}
	if a.AddressLine1 == "" {
		missing = append(missing, "address_line1")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.Zip == "" {
		missing = append(missing, "zip")
	}
	if a.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Missing shipping address fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// CustomOrder represents a paid print-on-demand order aggregate root.
// It is created only after payment has been confirmed upstream and tracks
// the order through fulfillment submission and shipment updates.
type CustomOrder struct {
	shared.BaseEntity
	OrderNumber   string `gorm:"uniqueIndex"`
	AffiliateCode string
	Email         string

	ProductID int64
	VariantID int64
	Quantity  int

	OriginalImageURL string
	MockupImageURL   string
	ProductName      string
	VariantName      string

	ProductPrice decimal.Decimal
	ShippingCost decimal.Decimal
	TotalPrice   decimal.Decimal

	Address ShippingAddress `gorm:"embedded"`

	PaymentReference string
	PaymentStatus    PaymentStatus
	PaidAt           *time.Time

	FulfillmentOrderID *int64
	FulfillmentStatus  string
	TrackingNumber     string
	TrackingURL        string

	CommissionAmount decimal.Decimal

	ThirdPartyAppName string
	ThirdPartyOrderID string
	Notes             string
}

// NewCustomOrderParams carries the inputs required to create a custom order
type NewCustomOrderParams struct {
	OrderNumber       string
	AffiliateCode     string
	Email             string
	ProductID         int64
	VariantID         int64
	Quantity          int
	OriginalImageURL  string
	MockupImageURL    string
	ProductName       string
	VariantName       string
	ProductPrice      decimal.Decimal
	ShippingCost      decimal.Decimal
	Address           ShippingAddress
	PaymentReference  string
	ThirdPartyAppName string
	ThirdPartyOrderID string
}

// NewCustomOrder creates a custom order in the paid state.
// Payment is confirmed upstream before this system ever sees the order, so
// there is no pending-payment phase here.
func NewCustomOrder(p NewCustomOrderParams) (*CustomOrder, error) {
	if p.OrderNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number cannot be empty")
	}
	if err := validateEmail(p.Email); err != nil {
		return nil, err
	}
	if p.ProductID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID must be positive")
	}
	if p.VariantID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Variant ID must be positive")
	}
	if p.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if err := validateURL(p.OriginalImageURL, "image_url"); err != nil {
		return nil, err
	}
	if !p.ProductPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price must be positive")
	}
	if p.ShippingCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipping cost cannot be negative")
	}
	if err := p.Address.Validate(); err != nil {
		return nil, err
	}
	if p.PaymentReference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment reference cannot be empty")
	}

	now := time.Now()
	order := &CustomOrder{
		BaseEntity:        shared.NewBaseEntity(),
		OrderNumber:       p.OrderNumber,
		AffiliateCode:     p.AffiliateCode,
		Email:             p.Email,
		ProductID:         p.ProductID,
		VariantID:         p.VariantID,
		Quantity:          p.Quantity,
		OriginalImageURL:  p.OriginalImageURL,
		MockupImageURL:    p.MockupImageURL,
		ProductName:       p.ProductName,
		VariantName:       p.VariantName,
		ProductPrice:      p.ProductPrice,
		ShippingCost:      p.ShippingCost,
		Address:           p.Address,
		PaymentReference:  p.PaymentReference,
		PaymentStatus:     PaymentStatusPaid,
		PaidAt:            &now,
		CommissionAmount:  decimal.Zero,
		ThirdPartyAppName: p.ThirdPartyAppName,
		ThirdPartyOrderID: p.ThirdPartyOrderID,
	}
	order.RecalculateTotal()

	return order, nil
}

// RecalculateTotal recomputes the total price from its components.
// Called on every save so the invariant total = product + shipping holds.
func (o *CustomOrder) RecalculateTotal() {
	o.TotalPrice = o.ProductPrice.Add(o.ShippingCost)
}

// AttachFulfillment records the provider order ID and its initial status
// after a successful submission
func (o *CustomOrder) AttachFulfillment(fulfillmentOrderID int64, status string) error {
	if o.FulfillmentOrderID != nil {
		return shared.NewDomainError("INVALID_STATE", "Order is already submitted to fulfillment")
	}
	if fulfillmentOrderID <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Fulfillment order ID must be positive")
	}

	o.FulfillmentOrderID = &fulfillmentOrderID
	o.FulfillmentStatus = status
	o.UpdatedAt = time.Now()

	return nil
}

// MarkShipped records shipment tracking details reported by the provider.
// Tracking fields are only ever set through this transition.
func (o *CustomOrder) MarkShipped(trackingNumber, trackingURL string) error {
	if o.FulfillmentOrderID == nil {
		return shared.NewDomainError("INVALID_STATE", "Order has no fulfillment submission")
	}

	o.FulfillmentStatus = FulfillmentStatusShipped
	o.TrackingNumber = trackingNumber
	o.TrackingURL = trackingURL
	o.UpdatedAt = time.Now()

	return nil
}

// MarkReturned records that the provider reported the package as returned
func (o *CustomOrder) MarkReturned() error {
	return o.setFulfillmentStatus(FulfillmentStatusReturned)
}

// MarkFulfillmentFailed records that the provider failed the order
func (o *CustomOrder) MarkFulfillmentFailed() error {
	return o.setFulfillmentStatus(FulfillmentStatusFailed)
}

// MarkCanceled records that the provider canceled the order
func (o *CustomOrder) MarkCanceled() error {
	return o.setFulfillmentStatus(FulfillmentStatusCanceled)
}

func (o *CustomOrder) setFulfillmentStatus(status string) error {
	if o.FulfillmentOrderID == nil {
		return shared.NewDomainError("INVALID_STATE", "Order has no fulfillment submission")
	}

	o.FulfillmentStatus = status
	o.UpdatedAt = time.Now()

	return nil
}

// SetCommissionAmount stores the affiliate commission computed for this order
func (o *CustomOrder) SetCommissionAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Commission amount cannot be negative")
	}

	o.CommissionAmount = amount
	o.UpdatedAt = time.Now()

	return nil
}

// IsSubmitted returns true once the order has a fulfillment order ID
func (o *CustomOrder) IsSubmitted() bool {
	return o.FulfillmentOrderID != nil
}

// IsShipped returns true if the provider has shipped the order
func (o *CustomOrder) IsShipped() bool {
	return o.FulfillmentStatus == FulfillmentStatusShipped
}

// NewOrderNumber generates a candidate order number of the form
// ORD-<year>-<8 uppercase hex>. Uniqueness is the caller's concern: generate,
// check against the store, and retry on collision.
func NewOrderNumber(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ORD-%d-%s", now.Year(), strings.ToUpper(hex.EncodeToString(buf)))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Email format is invalid")
	}
	return nil
}

func validateURL(raw, field string) error {
	if raw == "" {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s cannot be empty", field))
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s must be a valid http(s) URL", field))
	}
	return nil
}
