package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podstore/backend/internal/application/orders"
)

// maxWebhookBodySize bounds inbound webhook payloads
const maxWebhookBodySize = 1 << 20 // 1MB

// signatureHeader carries the provider's hex-encoded HMAC-SHA256 signature
const signatureHeader = "X-PF-Signature"

// WebhookHandler receives fulfillment status events pushed by the provider
type WebhookHandler struct {
	BaseHandler
	service *orders.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(service *orders.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/fulfillment", h.Receive)
}

// Receive verifies and applies a fulfillment webhook event. Verified,
// parseable events are always acknowledged with 200 so the provider does
// not retry events this system chooses to ignore.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodySize))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	if err := h.service.VerifySignature(body, c.GetHeader(signatureHeader)); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if err := h.service.HandleEvent(c.Request.Context(), body); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
