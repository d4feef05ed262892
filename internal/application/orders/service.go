package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/podstore/backend/internal/application/mockup"
	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
)

// EstimatedDeliveryDays is the delivery window quoted to customers at
// order creation
const EstimatedDeliveryDays = 7

// CreateParams is a payment-confirmed order creation request
type CreateParams struct {
	MockupID         string
	Email            string
	Quantity         int
	Address          order.ShippingAddress
	PaymentReference string
	Notes            string
}

// CreateResult is the outcome of an order creation
type CreateResult struct {
	Order             *order.CustomOrder
	EstimatedDelivery time.Time
	// Submitted reports whether the fulfillment submission succeeded.
	// A false value means the paid order was persisted but needs
	// operator follow-up before production starts.
	Submitted bool
}

// Service owns the custom order lifecycle: creation after payment,
// fulfillment submission and order lookups.
type Service struct {
	orders      order.CustomOrderRepository
	store       order.MockupStore
	gateway     provider.Gateway
	quote       *mockup.QuoteCalculator
	commissions *CommissionService
	logger      *zap.Logger
}

// NewService creates an order service
func NewService(
	orders order.CustomOrderRepository,
	store order.MockupStore,
	gateway provider.Gateway,
	quote *mockup.QuoteCalculator,
	commissions *CommissionService,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:      orders,
		store:       store,
		gateway:     gateway,
		quote:       quote,
		commissions: commissions,
		logger:      logger,
	}
}

// Create turns a staged mockup context into a paid order and submits it to
// the fulfillment provider. The order is persisted before submission: a
// paid order must never be lost to a provider outage. Submission failures
// leave the order unsubmitted for operator follow-up. The mockup context is
// consumed as soon as the order exists; a context that outlived its order
// would let a client retry persist a second paid order for the same payment.
func (s *Service) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	mc, err := s.store.Get(ctx, params.MockupID)
	if err != nil {
		return nil, err
	}

	quantity := params.Quantity
	if quantity == 0 {
		quantity = 1
	}

	shipping := s.quote.EstimateShipping(ctx,
		providerAddress(params.Address),
		[]provider.RateItem{{VariantID: mc.VariantID, Quantity: quantity}})

	customOrder, err := s.persistOrder(ctx, params, mc, quantity, shipping)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_number", customOrder.OrderNumber),
		zap.String("order_id", customOrder.ID.String()),
		zap.String("payment_reference", customOrder.PaymentReference))

	if err := s.store.Delete(ctx, params.MockupID); err != nil {
		s.logger.Warn("failed to delete consumed mockup context",
			zap.String("mockup_id", params.MockupID),
			zap.Error(err))
	}

	submitted := s.submitFulfillment(ctx, customOrder)
	if submitted {
		s.commissions.Record(ctx, customOrder)
	}

	return &CreateResult{
		Order:             customOrder,
		EstimatedDelivery: time.Now().AddDate(0, 0, EstimatedDeliveryDays),
		Submitted:         submitted,
	}, nil
}

// persistOrder saves a new order, regenerating the order number whenever
// the store's uniqueness constraint reports a collision. Uniqueness is
// enforced by the unique index on order_number, not by a pre-check.
func (s *Service) persistOrder(ctx context.Context, params CreateParams, mc *order.MockupContext, quantity int, shipping decimal.Decimal) (*order.CustomOrder, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		customOrder, err := order.NewCustomOrder(order.NewCustomOrderParams{
			OrderNumber:       order.NewOrderNumber(time.Now()),
			AffiliateCode:     mc.AffiliateCode,
			Email:             params.Email,
			ProductID:         mc.ProductID,
			VariantID:         mc.VariantID,
			Quantity:          quantity,
			OriginalImageURL:  mc.ImageURL,
			MockupImageURL:    mc.MockupImageURL,
			ProductName:       mc.ProductName,
			VariantName:       mc.VariantName,
			ProductPrice:      mc.BasePrice.Mul(decimal.NewFromInt(int64(quantity))),
			ShippingCost:      shipping,
			Address:           params.Address,
			PaymentReference:  params.PaymentReference,
			ThirdPartyAppName: mc.ThirdPartyAppName,
			ThirdPartyOrderID: mc.ThirdPartyOrderID,
		})
		if err != nil {
			return nil, err
		}
		customOrder.Notes = params.Notes

		err = s.orders.Save(ctx, customOrder)
		if err == nil {
			return customOrder, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		s.logger.Warn("order number collision, regenerating",
			zap.String("order_number", customOrder.OrderNumber))
	}
}

// GetByID returns an order by its internal ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*order.CustomOrder, error) {
	return s.orders.FindByID(ctx, id)
}

// GetByOrderNumber returns an order by its customer-facing order number
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.CustomOrder, error) {
	return s.orders.FindByOrderNumber(ctx, orderNumber)
}

// submitFulfillment submits the order for production and records the
// provider order ID. Failures are logged, not fatal.
func (s *Service) submitFulfillment(ctx context.Context, customOrder *order.CustomOrder) bool {
	result, err := s.gateway.CreateOrder(ctx, provider.OrderRequest{
		Recipient: providerAddress(customOrder.Address),
		Items: []provider.OrderItem{
			{
				VariantID: customOrder.VariantID,
				Quantity:  customOrder.Quantity,
				FileURL:   customOrder.OriginalImageURL,
			},
		},
		RetailCosts: provider.RetailCosts{
			Currency: "USD",
			Subtotal: customOrder.ProductPrice,
			Shipping: customOrder.ShippingCost,
			Total:    customOrder.TotalPrice,
		},
	})
	if err != nil {
		s.logger.Error("fulfillment submission failed, order needs operator follow-up",
			zap.String("order_number", customOrder.OrderNumber),
			zap.Error(err))
		return false
	}

	if err := customOrder.AttachFulfillment(result.ID, result.Status); err != nil {
		s.logger.Error("failed to attach fulfillment submission",
			zap.String("order_number", customOrder.OrderNumber),
			zap.Error(err))
		return false
	}
	if err := s.orders.Update(ctx, customOrder); err != nil {
		s.logger.Error("failed to persist fulfillment submission",
			zap.String("order_number", customOrder.OrderNumber),
			zap.Error(err))
		return false
	}

	s.logger.Info("order submitted to fulfillment",
		zap.String("order_number", customOrder.OrderNumber),
		zap.Int64("fulfillment_order_id", result.ID),
		zap.String("fulfillment_status", result.Status))

	return true
}

func providerAddress(addr order.ShippingAddress) provider.Address {
	return provider.Address{
		Name:        addr.RecipientName,
		Address1:    addr.AddressLine1,
		Address2:    addr.AddressLine2,
		City:        addr.City,
		StateCode:   addr.State,
		CountryCode: addr.Country,
		Zip:         addr.Zip,
	}
}
