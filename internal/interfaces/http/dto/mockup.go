package dto

import (
	"time"

	"github.com/podstore/backend/internal/domain/order"
)

// GenerateMockupRequest is the payload for mockup generation
type GenerateMockupRequest struct {
	ImageURL      string `json:"image_url" binding:"required,url"`
	ProductID     int64  `json:"product_id" binding:"required,gt=0"`
	VariantID     int64  `json:"variant_id" binding:"required,gt=0"`
	AffiliateCode string `json:"affiliate_code" binding:"required"`

	// Optional destination hint for the shipping estimate
	CountryCode string `json:"country_code" binding:"omitempty,len=2"`
	StateCode   string `json:"state_code"`
	Zip         string `json:"zip"`

	// Optional third-party storefront attribution
	ThirdPartyAppName string `json:"third_party_app_name"`
	ThirdPartyOrderID string `json:"third_party_order_id"`
}

// MockupResponse is the customer-facing view of a staged mockup context
type MockupResponse struct {
	MockupID          string    `json:"mockup_id"`
	MockupImageURL    string    `json:"mockup_image_url"`
	ProductID         int64     `json:"product_id"`
	VariantID         int64     `json:"variant_id"`
	ProductName       string    `json:"product_name"`
	VariantName       string    `json:"variant_name"`
	BasePrice         string    `json:"base_price"`
	EstimatedShipping string    `json:"estimated_shipping"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewMockupResponse maps a mockup context to its API representation
func NewMockupResponse(mc *order.MockupContext) MockupResponse {
	return MockupResponse{
		MockupID:          mc.ID,
		MockupImageURL:    mc.MockupImageURL,
		ProductID:         mc.ProductID,
		VariantID:         mc.VariantID,
		ProductName:       mc.ProductName,
		VariantName:       mc.VariantName,
		BasePrice:         mc.BasePrice.StringFixed(2),
		EstimatedShipping: mc.EstimatedShipping.StringFixed(2),
		CreatedAt:         mc.CreatedAt,
	}
}
