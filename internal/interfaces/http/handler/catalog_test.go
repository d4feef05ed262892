package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backend/internal/application/catalog"
	"github.com/podstore/backend/internal/domain/order"
	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
	"github.com/podstore/backend/internal/interfaces/http/dto"
)

func setupCatalogTestRouter() (*gin.Engine, *MockGateway, *MockCatalogRepository) {
	mockGateway := new(MockGateway)
	mockCatalog := new(MockCatalogRepository)

	service := catalog.NewService(mockGateway, mockCatalog, testLogger())
	handler := NewCatalogHandler(service)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	return router, mockGateway, mockCatalog
}

func syncedTestProduct(t *testing.T) *order.CatalogProduct {
	t.Helper()
	p, err := order.NewCatalogProduct(5, "Classic Tee", "Heavyweight cotton tee",
		decimal.RequireFromString("24.99"),
		[]order.ProductVariant{
			{ID: 12, Name: "Classic Tee", Size: "M", Color: "Black", Price: decimal.RequireFromString("29.99")},
		})
	require.NoError(t, err)
	p.SyncedAt = time.Now()
	return p
}

func TestCatalogHandler_List(t *testing.T) {
	t.Run("should list synced products", func(t *testing.T) {
		router, _, mockCatalog := setupCatalogTestRouter()

		mockCatalog.On("FindAll", mock.Anything).
			Return([]order.CatalogProduct{*syncedTestProduct(t)}, nil)

		w := getPath(router, "/api/v1/products")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.True(t, response["success"].(bool))

		products := response["data"].([]any)
		require.Len(t, products, 1)
		product := products[0].(map[string]any)
		assert.Equal(t, float64(5), product["product_id"])
		assert.Equal(t, "24.99", product["base_price"])
	})

	t.Run("should return an empty list when nothing is synced", func(t *testing.T) {
		router, _, mockCatalog := setupCatalogTestRouter()

		mockCatalog.On("FindAll", mock.Anything).Return([]order.CatalogProduct{}, nil)

		w := getPath(router, "/api/v1/products")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeResponse(t, w)
		assert.Len(t, response["data"].([]any), 0)
	})
}

func TestCatalogHandler_Get(t *testing.T) {
	t.Run("should return a product by provider ID", func(t *testing.T) {
		router, _, mockCatalog := setupCatalogTestRouter()

		mockCatalog.On("FindByProviderProductID", mock.Anything, int64(5)).
			Return(syncedTestProduct(t), nil)

		w := getPath(router, "/api/v1/products/5")

		assert.Equal(t, http.StatusOK, w.Code)
		data := responseData(t, w)
		assert.Equal(t, "Classic Tee", data["name"])

		variants := data["variants"].([]any)
		require.Len(t, variants, 1)
		assert.Equal(t, "29.99", variants[0].(map[string]any)["price"])
	})

	t.Run("should return 404 for an unsynced product", func(t *testing.T) {
		router, _, mockCatalog := setupCatalogTestRouter()

		mockCatalog.On("FindByProviderProductID", mock.Anything, int64(404)).
			Return(nil, order.ErrCatalogProductNotFound)

		w := getPath(router, "/api/v1/products/404")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, responseErrorCode(t, w))
	})

	t.Run("should reject a non-numeric product ID", func(t *testing.T) {
		router, _, _ := setupCatalogTestRouter()

		w := getPath(router, "/api/v1/products/abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, responseErrorCode(t, w))
	})
}

func TestCatalogHandler_Sync(t *testing.T) {
	t.Run("should pull the provider catalog", func(t *testing.T) {
		router, mockGateway, mockCatalog := setupCatalogTestRouter()

		mockGateway.On("ListProducts", mock.Anything).Return([]provider.Product{
			{
				ID:   5,
				Name: "Classic Tee",
				Variants: []provider.ProductVariant{
					{ID: 12, Name: "Classic Tee", Size: "M", Color: "Black", RetailPrice: decimal.RequireFromString("29.99")},
				},
			},
		}, nil)
		mockCatalog.On("FindByProviderProductID", mock.Anything, int64(5)).
			Return(nil, order.ErrCatalogProductNotFound)
		mockCatalog.On("Upsert", mock.Anything, mock.AnythingOfType("*order.CatalogProduct")).
			Return(nil)

		w := postJSON(router, "/api/v1/products/sync", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := responseData(t, w)
		assert.Equal(t, float64(1), data["synced"])

		mockCatalog.AssertExpectations(t)
	})

	t.Run("should surface provider rate limiting", func(t *testing.T) {
		router, mockGateway, _ := setupCatalogTestRouter()

		mockGateway.On("ListProducts", mock.Anything).Return(nil, shared.ErrRateLimited)

		w := postJSON(router, "/api/v1/products/sync", nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, dto.ErrCodeRateLimited, responseErrorCode(t, w))
	})
}
