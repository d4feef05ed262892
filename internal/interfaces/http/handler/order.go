package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podstore/backend/internal/application/orders"
	"github.com/podstore/backend/internal/interfaces/http/dto"
)

// OrderHandler serves order creation, lookup and commission endpoints
type OrderHandler struct {
	BaseHandler
	service     *orders.Service
	commissions *orders.CommissionService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *orders.Service, commissions *orders.CommissionService) *OrderHandler {
	return &OrderHandler{service: service, commissions: commissions}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ordersGroup := rg.Group("/orders")
	{
		ordersGroup.POST("", h.Create)
		ordersGroup.GET("/:id", h.Get)
		ordersGroup.GET("/number/:orderNumber", h.GetByNumber)
	}

	affiliates := rg.Group("/affiliates")
	{
		affiliates.GET("/:accountID/commissions", h.CommissionTotals)
	}
}

// Create creates a payment-confirmed order from a staged mockup context
// and submits it for fulfillment
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), orders.CreateParams{
		MockupID:         req.MockupID,
		Email:            req.Email,
		Quantity:         req.Quantity,
		Address:          req.Address.ToShippingAddress(),
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, dto.NewCreatedOrderResponse(result.Order, result.EstimatedDelivery))
}

// Get returns an order by its internal ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Order ID must be a valid UUID")
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewOrderResponse(o))
}

// GetByNumber returns an order by its customer-facing order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	o, err := h.service.GetByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewOrderResponse(o))
}

// CommissionTotals reports lifetime and unpaid commission totals for an
// affiliate account
func (h *OrderHandler) CommissionTotals(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil || accountID <= 0 {
		h.BadRequest(c, "Account ID must be a positive integer")
		return
	}

	totals, err := h.commissions.Totals(c.Request.Context(), accountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dto.CommissionTotalsResponse{
		AccountID: totals.AccountID,
		Total:     totals.Total.StringFixed(2),
		Unpaid:    totals.Unpaid.StringFixed(2),
	})
}
