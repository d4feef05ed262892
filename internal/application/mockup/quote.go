package mockup

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/podstore/backend/internal/domain/provider"
)

// DefaultShippingRate is charged when the provider cannot quote the
// destination. It keeps checkout working through provider degradation.
var DefaultShippingRate = decimal.RequireFromString("5.99")

// QuoteCalculator estimates shipping cost for an order through the
// provider's rate API, always picking the cheapest offered rate.
type QuoteCalculator struct {
	gateway provider.Gateway
	logger  *zap.Logger
}

// NewQuoteCalculator creates a shipping quote calculator
func NewQuoteCalculator(gateway provider.Gateway, logger *zap.Logger) *QuoteCalculator {
	return &QuoteCalculator{gateway: gateway, logger: logger}
}

// EstimateShipping returns the cheapest shipping rate for the destination
// and items. Rate API failures and empty rate lists fall back to
// DefaultShippingRate rather than blocking the customer.
func (q *QuoteCalculator) EstimateShipping(ctx context.Context, addr provider.Address, items []provider.RateItem) decimal.Decimal {
	rates, err := q.gateway.ShippingRates(ctx, addr, items)
	if err != nil {
		q.logger.Warn("shipping rate lookup failed, using default rate",
			zap.String("country", addr.CountryCode),
			zap.Error(err))
		return DefaultShippingRate
	}
	if len(rates) == 0 {
		q.logger.Warn("provider returned no shipping rates, using default rate",
			zap.String("country", addr.CountryCode))
		return DefaultShippingRate
	}

	cheapest := rates[0].Rate
	for _, rate := range rates[1:] {
		if rate.Rate.LessThan(cheapest) {
			cheapest = rate.Rate
		}
	}
	return cheapest
}
