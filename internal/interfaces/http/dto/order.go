package dto

import (
	"time"

	"github.com/podstore/backend/internal/domain/order"
)

// AddressRequest is a shipping address payload
type AddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required"`
	AddressLine1  string `json:"address_line1" binding:"required"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	Zip           string `json:"zip" binding:"required"`
	Country       string `json:"country" binding:"required,len=2"`
	Phone         string `json:"phone"`
}

// ToShippingAddress maps the payload to the domain address
func (a *AddressRequest) ToShippingAddress() order.ShippingAddress {
	return order.ShippingAddress{
		RecipientName: a.RecipientName,
		AddressLine1:  a.AddressLine1,
		AddressLine2:  a.AddressLine2,
		City:          a.City,
		State:         a.State,
		Zip:           a.Zip,
		Country:       a.Country,
		Phone:         a.Phone,
	}
}

// CreateOrderRequest is the payload for payment-confirmed order creation
type CreateOrderRequest struct {
	MockupID         string         `json:"mockup_id" binding:"required"`
	Email            string         `json:"email" binding:"required,email"`
	Quantity         int            `json:"quantity" binding:"omitempty,gt=0"`
	Address          AddressRequest `json:"address" binding:"required"`
	PaymentReference string         `json:"payment_reference" binding:"required"`
	Notes            string         `json:"notes"`
}

// OrderResponse is the customer-facing view of a custom order
type OrderResponse struct {
	ID                 string     `json:"id"`
	OrderNumber        string     `json:"order_number"`
	Email              string     `json:"email"`
	ProductName        string     `json:"product_name"`
	VariantName        string     `json:"variant_name"`
	Quantity           int        `json:"quantity"`
	MockupImageURL     string     `json:"mockup_image_url"`
	ProductPrice       string     `json:"product_price"`
	ShippingCost       string     `json:"shipping_cost"`
	TotalPrice         string     `json:"total_price"`
	PaymentStatus      string     `json:"payment_status"`
	FulfillmentOrderID *int64     `json:"fulfillment_order_id,omitempty"`
	FulfillmentStatus  string     `json:"fulfillment_status,omitempty"`
	TrackingNumber     string     `json:"tracking_number,omitempty"`
	TrackingURL        string     `json:"tracking_url,omitempty"`
	EstimatedDelivery  *time.Time `json:"estimated_delivery,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewOrderResponse maps a custom order to its API representation
func NewOrderResponse(o *order.CustomOrder) OrderResponse {
	return OrderResponse{
		ID:                 o.ID.String(),
		OrderNumber:        o.OrderNumber,
		Email:              o.Email,
		ProductName:        o.ProductName,
		VariantName:        o.VariantName,
		Quantity:           o.Quantity,
		MockupImageURL:     o.MockupImageURL,
		ProductPrice:       o.ProductPrice.StringFixed(2),
		ShippingCost:       o.ShippingCost.StringFixed(2),
		TotalPrice:         o.TotalPrice.StringFixed(2),
		PaymentStatus:      o.PaymentStatus.String(),
		FulfillmentOrderID: o.FulfillmentOrderID,
		FulfillmentStatus:  o.FulfillmentStatus,
		TrackingNumber:     o.TrackingNumber,
		TrackingURL:        o.TrackingURL,
		CreatedAt:          o.CreatedAt,
	}
}

// NewCreatedOrderResponse maps a freshly created order including the
// estimated delivery window
func NewCreatedOrderResponse(o *order.CustomOrder, estimatedDelivery time.Time) OrderResponse {
	resp := NewOrderResponse(o)
	resp.EstimatedDelivery = &estimatedDelivery
	return resp
}

// CommissionTotalsResponse summarizes an affiliate's earnings
type CommissionTotalsResponse struct {
	AccountID int64  `json:"account_id"`
	Total     string `json:"total"`
	Unpaid    string `json:"unpaid"`
}

// CatalogVariantResponse is a sellable variant of a catalog product
type CatalogVariantResponse struct {
	VariantID    int64  `json:"variant_id"`
	Name         string `json:"name"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	Price        string `json:"price"`
	Availability string `json:"availability,omitempty"`
}

// CatalogProductResponse is a synced catalog product
type CatalogProductResponse struct {
	ProductID   int64                    `json:"product_id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	BasePrice   string                   `json:"base_price"`
	Variants    []CatalogVariantResponse `json:"variants"`
	SyncedAt    time.Time                `json:"synced_at"`
}

// NewCatalogProductResponse maps a synced product to its API representation
func NewCatalogProductResponse(p *order.CatalogProduct) CatalogProductResponse {
	variants := make([]CatalogVariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, CatalogVariantResponse{
			VariantID:    v.ID,
			Name:         v.Name,
			Size:         v.Size,
			Color:        v.Color,
			Price:        v.Price.StringFixed(2),
			Availability: v.Availability,
		})
	}
	return CatalogProductResponse{
		ProductID:   p.ProviderProductID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice.StringFixed(2),
		Variants:    variants,
		SyncedAt:    p.SyncedAt,
	}
}
