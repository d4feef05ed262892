package handler

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backend/internal/application/mockup"
	"github.com/podstore/backend/internal/application/orders"
	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
	"github.com/podstore/backend/internal/interfaces/http/dto"
)

type orderTestMocks struct {
	orders      *MockCustomOrderRepository
	store       *MockMockupStore
	gateway     *MockGateway
	commissions *MockCommissionRepository
	accounts    *MockAccountDirectory
}

func setupOrderTestRouter() (*gin.Engine, *orderTestMocks) {
	mocks := &orderTestMocks{
		orders:      new(MockCustomOrderRepository),
		store:       new(MockMockupStore),
		gateway:     new(MockGateway),
		commissions: new(MockCommissionRepository),
		accounts:    new(MockAccountDirectory),
	}

	logger := testLogger()
	quote := mockup.NewQuoteCalculator(mocks.gateway, logger)
	commissionService := orders.NewCommissionService(
		mocks.commissions, mocks.accounts, mocks.orders, decimal.Zero, logger)
	service := orders.NewService(
		mocks.orders, mocks.store, mocks.gateway, quote, commissionService, logger)
	handler := NewOrderHandler(service, commissionService)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, mocks
}

func stagedTestContext() *order.MockupContext {
	return &order.MockupContext{
		ID:                "ctx-1",
		ProductID:         5,
		VariantID:         12,
		ImageURL:          "https://cdn.example.com/art.png",
		MockupImageURL:    "https://cdn.example.com/mockup.png",
		ProductName:       "Classic Tee",
		VariantName:       "Black / M",
		BasePrice:         decimal.RequireFromString("29.99"),
		EstimatedShipping: decimal.RequireFromString("5.99"),
		CreatedAt:         time.Now(),
	}
}

func createOrderBody() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		MockupID:         "ctx-1",
		Email:            "customer@example.com",
		PaymentReference: "pi_123",
		Address: dto.AddressRequest{
			RecipientName: "Jane Doe",
			AddressLine1:  "1 Main St",
			City:          "Portland",
			State:         "OR",
			Zip:           "97201",
			Country:       "US",
		},
	}
}

func paidTestOrder(t *testing.T) *order.CustomOrder {
	t.Helper()
	o, err := order.NewCustomOrder(order.NewCustomOrderParams{
		OrderNumber:      "ORD-2026-0A1B2C3D",
		Email:            "customer@example.com",
		ProductID:        5,
		VariantID:        12,
		Quantity:         1,
		OriginalImageURL: "https://cdn.example.com/art.png",
		MockupImageURL:   "https://cdn.example.com/mockup.png",
		ProductName:      "Classic Tee",
		VariantName:      "Black / M",
		ProductPrice:     decimal.RequireFromString("29.99"),
		ShippingCost:     decimal.RequireFromString("5.99"),
		Address: order.ShippingAddress{
			RecipientName: "Jane Doe",
			AddressLine1:  "1 Main St",
			City:          "Portland",
			State:         "OR",
			Zip:           "97201",
			Country:       "US",
		},
		PaymentReference: "pi_123",
	})
	require.NoError(t, err)
	return o
}

func TestOrderHandler_Create(t *testing.T) {
	t.Run("should create and submit an order", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		mocks.store.On("Get", mock.Anything, "ctx-1").Return(stagedTestContext(), nil)
		mocks.gateway.On("ShippingRates", mock.Anything, mock.Anything, mock.Anything).
			Return([]provider.Rate{{ID: "STANDARD", Name: "Standard", Rate: decimal.RequireFromString("5.99"), Currency: "USD"}}, nil)
		mocks.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.CustomOrder")).
			Return(nil)
		mocks.gateway.On("CreateOrder", mock.Anything, mock.AnythingOfType("provider.OrderRequest")).
			Return(&provider.OrderResult{ID: 777, Status: "draft"}, nil)
		mocks.orders.On("Update", mock.Anything, mock.AnythingOfType("*order.CustomOrder")).
			Return(nil)
		mocks.store.On("Delete", mock.Anything, "ctx-1").Return(nil)

		w := postJSON(router, "/api/v1/orders", createOrderBody())

		assert.Equal(t, http.StatusCreated, w.Code)

		data := responseData(t, w)
		assert.Regexp(t, regexp.MustCompile(`^ORD-\d{4}-[0-9A-F]{8}$`), data["order_number"])
		assert.Equal(t, "paid", data["payment_status"])
		assert.Equal(t, "29.99", data["product_price"])
		assert.Equal(t, "35.98", data["total_price"])
		assert.Equal(t, float64(777), data["fulfillment_order_id"])
		assert.NotEmpty(t, data["estimated_delivery"])

		mocks.store.AssertExpectations(t)
		mocks.orders.AssertExpectations(t)
		mocks.gateway.AssertExpectations(t)
	})

	t.Run("should keep the paid order when submission fails", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		mocks.store.On("Get", mock.Anything, "ctx-1").Return(stagedTestContext(), nil)
		mocks.gateway.On("ShippingRates", mock.Anything, mock.Anything, mock.Anything).
			Return([]provider.Rate{{Rate: decimal.RequireFromString("5.99")}}, nil)
		mocks.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.CustomOrder")).
			Return(nil)
		mocks.store.On("Delete", mock.Anything, "ctx-1").Return(nil)
		mocks.gateway.On("CreateOrder", mock.Anything, mock.AnythingOfType("provider.OrderRequest")).
			Return(nil, shared.NewDomainError("PROVIDER_FAILED", "provider unavailable"))

		w := postJSON(router, "/api/v1/orders", createOrderBody())

		assert.Equal(t, http.StatusCreated, w.Code)

		data := responseData(t, w)
		assert.Equal(t, "paid", data["payment_status"])
		assert.NotEmpty(t, data["estimated_delivery"])
		_, hasFulfillment := data["fulfillment_order_id"]
		assert.False(t, hasFulfillment, "unsubmitted orders have no fulfillment order ID")

		// the context is consumed with the order either way
		mocks.store.AssertCalled(t, "Delete", mock.Anything, "ctx-1")
		mocks.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should return 404 when the mockup context expired", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		mocks.store.On("Get", mock.Anything, "ctx-1").Return(nil, order.ErrMockupNotFound)

		w := postJSON(router, "/api/v1/orders", createOrderBody())

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeMockupNotFound, responseErrorCode(t, w))
		mocks.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("should enumerate missing fields", func(t *testing.T) {
		router, _ := setupOrderTestRouter()

		w := postJSON(router, "/api/v1/orders", map[string]any{
			"mockup_id": "ctx-1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, responseErrorCode(t, w))
		assert.Contains(t, w.Body.String(), "Email is required")
	})

	t.Run("should reject an invalid email", func(t *testing.T) {
		router, _ := setupOrderTestRouter()

		body := createOrderBody()
		body.Email = "not-an-email"
		w := postJSON(router, "/api/v1/orders", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, responseErrorCode(t, w))
	})
}

func TestOrderHandler_Get(t *testing.T) {
	t.Run("should return an order by ID", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		o := paidTestOrder(t)
		mocks.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		w := getPath(router, "/api/v1/orders/"+o.ID.String())

		assert.Equal(t, http.StatusOK, w.Code)
		data := responseData(t, w)
		assert.Equal(t, o.OrderNumber, data["order_number"])
		assert.Equal(t, "customer@example.com", data["email"])
	})

	t.Run("should reject a malformed order ID", func(t *testing.T) {
		router, _ := setupOrderTestRouter()

		w := getPath(router, "/api/v1/orders/not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, responseErrorCode(t, w))
	})

	t.Run("should return an order by number", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		o := paidTestOrder(t)
		mocks.orders.On("FindByOrderNumber", mock.Anything, o.OrderNumber).Return(o, nil)

		w := getPath(router, "/api/v1/orders/number/"+o.OrderNumber)

		assert.Equal(t, http.StatusOK, w.Code)
		data := responseData(t, w)
		assert.Equal(t, o.OrderNumber, data["order_number"])
	})

	t.Run("should return 404 for an unknown order number", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		mocks.orders.On("FindByOrderNumber", mock.Anything, "ORD-2026-FFFFFFFF").
			Return(nil, shared.ErrNotFound)

		w := getPath(router, "/api/v1/orders/number/ORD-2026-FFFFFFFF")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, responseErrorCode(t, w))
	})
}

func TestOrderHandler_CommissionTotals(t *testing.T) {
	t.Run("should report totals for an affiliate", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		mocks.accounts.On("FindByID", mock.Anything, int64(42)).
			Return(&order.Account{ID: 42, Email: "aff@example.com", Role: order.AccountRoleAffiliate}, nil)
		mocks.commissions.On("TotalForAccount", mock.Anything, int64(42)).
			Return(decimal.RequireFromString("9.00"), nil)
		mocks.commissions.On("UnpaidTotalForAccount", mock.Anything, int64(42)).
			Return(decimal.RequireFromString("4.50"), nil)

		w := getPath(router, "/api/v1/affiliates/42/commissions")

		assert.Equal(t, http.StatusOK, w.Code)
		data := responseData(t, w)
		assert.Equal(t, float64(42), data["account_id"])
		assert.Equal(t, "9.00", data["total"])
		assert.Equal(t, "4.50", data["unpaid"])
	})

	t.Run("should reject a non-numeric account ID", func(t *testing.T) {
		router, _ := setupOrderTestRouter()

		w := getPath(router, "/api/v1/affiliates/abc/commissions")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, responseErrorCode(t, w))
	})

	t.Run("should return 404 for an unknown account", func(t *testing.T) {
		router, mocks := setupOrderTestRouter()

		mocks.accounts.On("FindByID", mock.Anything, int64(99)).
			Return(nil, shared.ErrNotFound)

		w := getPath(router, "/api/v1/affiliates/99/commissions")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, responseErrorCode(t, w))
	})
}
