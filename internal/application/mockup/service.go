package mockup

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/provider"
)

// Defaults applied when a product is missing from the synced catalog.
// Checkout stays usable even when the catalog sync is behind.
var (
	DefaultContextTTL  = 24 * time.Hour
	fallbackBasePrice  = decimal.RequireFromString("29.99")
	fallbackProduct    = "Custom Product"
	fallbackVariant    = "Standard"
	defaultCountryCode = "US"
)

// GenerateParams is a mockup generation request
type GenerateParams struct {
	ImageURL      string
	ProductID     int64
	VariantID     int64
	AffiliateCode string
	// Optional destination hint for the shipping estimate
	CountryCode string
	StateCode   string
	Zip         string
	// Optional third-party storefront attribution
	ThirdPartyAppName string
	ThirdPartyOrderID string
}

// Service generates product mockups and stages the result as an expiring
// checkout context that order creation consumes later.
type Service struct {
	orchestrator *Orchestrator
	quote        *QuoteCalculator
	catalog      order.CatalogProductRepository
	store        order.MockupStore
	contextTTL   time.Duration
	logger       *zap.Logger
}

// NewService creates a mockup service. Zero contextTTL falls back to
// DefaultContextTTL.
func NewService(
	orchestrator *Orchestrator,
	quote *QuoteCalculator,
	catalog order.CatalogProductRepository,
	store order.MockupStore,
	contextTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if contextTTL <= 0 {
		contextTTL = DefaultContextTTL
	}
	return &Service{
		orchestrator: orchestrator,
		quote:        quote,
		catalog:      catalog,
		store:        store,
		contextTTL:   contextTTL,
		logger:       logger,
	}
}

// Generate renders a mockup for the customer's artwork, prices the
// product from the synced catalog and stages the checkout context
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*order.MockupContext, error) {
	mockupURL, err := s.orchestrator.Generate(ctx, params.ImageURL, params.ProductID, params.VariantID)
	if err != nil {
		return nil, err
	}

	productName, variantName, basePrice := s.resolveProduct(ctx, params.ProductID, params.VariantID)

	countryCode := params.CountryCode
	if countryCode == "" {
		countryCode = defaultCountryCode
	}
	shipping := s.quote.EstimateShipping(ctx,
		provider.Address{CountryCode: countryCode, StateCode: params.StateCode, Zip: params.Zip},
		[]provider.RateItem{{VariantID: params.VariantID, Quantity: 1}})

	mc := &order.MockupContext{
		ID:                uuid.NewString(),
		AffiliateCode:     params.AffiliateCode,
		ProductID:         params.ProductID,
		VariantID:         params.VariantID,
		ImageURL:          params.ImageURL,
		MockupImageURL:    mockupURL,
		ProductName:       productName,
		VariantName:       variantName,
		BasePrice:         basePrice,
		EstimatedShipping: shipping,
		ThirdPartyAppName: params.ThirdPartyAppName,
		ThirdPartyOrderID: params.ThirdPartyOrderID,
		CreatedAt:         time.Now(),
	}

	if err := s.store.Put(ctx, mc, s.contextTTL); err != nil {
		return nil, err
	}

	s.logger.Info("mockup context staged",
		zap.String("mockup_id", mc.ID),
		zap.Int64("product_id", params.ProductID),
		zap.Int64("variant_id", params.VariantID))

	return mc, nil
}

// Lookup returns a staged mockup context by ID
func (s *Service) Lookup(ctx context.Context, mockupID string) (*order.MockupContext, error) {
	return s.store.Get(ctx, mockupID)
}

// resolveProduct prices and names the product from the synced catalog,
// falling back to generic labels when the catalog has no entry yet
func (s *Service) resolveProduct(ctx context.Context, productID, variantID int64) (string, string, decimal.Decimal) {
	product, err := s.catalog.FindByProviderProductID(ctx, productID)
	if err != nil {
		if !errors.Is(err, order.ErrCatalogProductNotFound) {
			s.logger.Warn("catalog lookup failed",
				zap.Int64("product_id", productID),
				zap.Error(err))
		}
		return fallbackProduct, fallbackVariant, fallbackBasePrice
	}

	if variant := product.Variant(variantID); variant != nil {
		return product.Name, variant.DisplayName(), variant.Price
	}
	return product.Name, fallbackVariant, product.BasePrice
}
