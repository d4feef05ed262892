package orders

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/shared"
)

// Webhook event types the provider reports that this system reacts to
const (
	EventPackageShipped  = "package_shipped"
	EventPackageReturned = "package_returned"
	EventOrderFailed     = "order_failed"
	EventOrderCanceled   = "order_canceled"
)

// ErrInvalidSignature is returned when a webhook's HMAC signature does not
// match the raw request body
var ErrInvalidSignature = shared.NewDomainError("UNAUTHORIZED", "Webhook signature verification failed")

type webhookPayload struct {
	Type string      `json:"type"`
	Data webhookData `json:"data"`
}

type webhookData struct {
	Order struct {
		ID int64 `json:"id"`
	} `json:"order"`
	Shipments []struct {
		TrackingNumber string `json:"tracking_number"`
		TrackingURL    string `json:"tracking_url"`
	} `json:"shipment"`
}

// WebhookService verifies and applies fulfillment status events pushed by
// the provider.
type WebhookService struct {
	orders     order.CustomOrderRepository
	secret     string
	production bool
	logger     *zap.Logger
}

// NewWebhookService creates a webhook service. secret is the shared HMAC
// key; production toggles whether an empty secret is tolerated.
func NewWebhookService(orders order.CustomOrderRepository, secret string, production bool, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		orders:     orders,
		secret:     secret,
		production: production,
		logger:     logger,
	}
}

// VerifySignature checks the hex-encoded HMAC-SHA256 signature of the raw
// request body. Verification is only skipped when no secret is configured
// outside production.
func (s *WebhookService) VerifySignature(body []byte, signature string) error {
	if s.secret == "" {
		if s.production {
			return ErrInvalidSignature
		}
		s.logger.Warn("webhook secret not configured, skipping signature verification")
		return nil
	}

	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// HandleEvent parses a verified webhook body and applies the status
// transition it carries. Events for unknown orders and unknown event types
// are acknowledged without effect; the provider should not retry them.
func (s *WebhookService) HandleEvent(ctx context.Context, body []byte) error {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Webhook payload is not valid JSON")
	}
	if payload.Type == "" {
		return shared.NewDomainError("INVALID_INPUT", "Webhook payload has no event type")
	}

	switch payload.Type {
	case EventPackageShipped, EventPackageReturned, EventOrderFailed, EventOrderCanceled:
	default:
		s.logger.Info("ignoring unhandled webhook event type",
			zap.String("event_type", payload.Type))
		return nil
	}

	customOrder, err := s.orders.FindByFulfillmentOrderID(ctx, payload.Data.Order.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("webhook event for unknown fulfillment order",
				zap.String("event_type", payload.Type),
				zap.Int64("fulfillment_order_id", payload.Data.Order.ID))
			return nil
		}
		return err
	}

	switch payload.Type {
	case EventPackageShipped:
		var trackingNumber, trackingURL string
		if len(payload.Data.Shipments) > 0 {
			trackingNumber = payload.Data.Shipments[0].TrackingNumber
			trackingURL = payload.Data.Shipments[0].TrackingURL
		}
		err = customOrder.MarkShipped(trackingNumber, trackingURL)
	case EventPackageReturned:
		err = customOrder.MarkReturned()
	case EventOrderFailed:
		err = customOrder.MarkFulfillmentFailed()
	case EventOrderCanceled:
		err = customOrder.MarkCanceled()
	}
	if err != nil {
		return err
	}

	if err := s.orders.Update(ctx, customOrder); err != nil {
		return err
	}

	s.logger.Info("webhook event applied",
		zap.String("event_type", payload.Type),
		zap.String("order_number", customOrder.OrderNumber),
		zap.String("fulfillment_status", customOrder.FulfillmentStatus))

	return nil
}
