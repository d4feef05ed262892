package order

import (
	"fmt"
	"time"

	"github.com/podstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrCatalogProductNotFound is returned when a product has not been
// synced from the provider catalog
var ErrCatalogProductNotFound = shared.NewDomainError("NOT_FOUND", "Catalog product not found")

// ProductVariant is a sellable variation of a catalog product,
// as reported by the fulfillment provider
type ProductVariant struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	Price        decimal.Decimal `json:"price"`
	Availability string          `json:"availability"`
}

// DisplayName returns the human-readable variant label shown at checkout
func (v *ProductVariant) DisplayName() string {
	if v.Color == "" && v.Size == "" {
		return "Standard"
	}
	return fmt.Sprintf("%s / %s", v.Color, v.Size)
}

// CatalogProduct mirrors a product definition synced from the fulfillment
// provider's catalog. BasePrice is the lowest variant retail price.
type CatalogProduct struct {
	shared.BaseEntity
	ProviderProductID int64 `gorm:"uniqueIndex"`
	Name              string
	Description       string
	BasePrice         decimal.Decimal
	Variants          []ProductVariant `gorm:"serializer:json"`
	SyncedAt          time.Time
}

// NewCatalogProduct creates a catalog product from provider data
func NewCatalogProduct(providerProductID int64, name, description string, basePrice decimal.Decimal, variants []ProductVariant) (*CatalogProduct, error) {
	if providerProductID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Provider product ID must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Base price cannot be negative")
	}

	return &CatalogProduct{
		BaseEntity:        shared.NewBaseEntity(),
		ProviderProductID: providerProductID,
		Name:              name,
		Description:       description,
		BasePrice:         basePrice,
		Variants:          variants,
		SyncedAt:          time.Now(),
	}, nil
}

// Variant returns the variant with the given provider variant ID, or nil
func (p *CatalogProduct) Variant(variantID int64) *ProductVariant {
	for idx := range p.Variants {
		if p.Variants[idx].ID == variantID {
			return &p.Variants[idx]
		}
	}
	return nil
}

// Refresh replaces the synced fields with fresh provider data
func (p *CatalogProduct) Refresh(name, description string, basePrice decimal.Decimal, variants []ProductVariant) {
	p.Name = name
	p.Description = description
	p.BasePrice = basePrice
	p.Variants = variants
	p.SyncedAt = time.Now()
	p.UpdatedAt = time.Now()
}
