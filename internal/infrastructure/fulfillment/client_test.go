package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		StoreID: "store-42",
	})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)
}

func TestClient_RequestHeaders(t *testing.T) {
	var gotAuth, gotStore string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotStore = r.Header.Get("X-PF-Store-Id")
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "result": map[string]any{"task_key": "tk"}})
	})

	_, err := client.CreateMockupTask(context.Background(), "https://cdn.example.com/art.png", 5, 12)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "store-42", gotStore)
}

func TestClient_CreateMockupTask(t *testing.T) {
	var gotPath string
	var gotBody createTaskRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"result": map[string]any{"task_key": "task-abc", "status": "pending"},
		})
	})

	taskKey, err := client.CreateMockupTask(context.Background(), "https://cdn.example.com/art.png", 5, 12)

	require.NoError(t, err)
	assert.Equal(t, "task-abc", taskKey)
	assert.Equal(t, "/mockup-generator/create-task/5", gotPath)
	assert.Equal(t, []int64{12}, gotBody.VariantIDs)
	require.Len(t, gotBody.Files, 1)
	assert.Equal(t, "front", gotBody.Files[0].Placement)
	assert.Equal(t, "https://cdn.example.com/art.png", gotBody.Files[0].ImageURL)
	assert.Equal(t, 1800, gotBody.Files[0].Position.AreaWidth)
	assert.Equal(t, 2400, gotBody.Files[0].Position.AreaHeight)
}

func TestClient_GetMockupTask(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "task-abc", r.URL.Query().Get("task_key"))
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": map[string]any{
				"task_key": "task-abc",
				"status":   "completed",
				"mockups": []map[string]any{
					{"mockup_url": "https://img.example.com/m1.jpg"},
					{"mockup_url": "https://img.example.com/m2.jpg"},
				},
			},
		})
	})

	task, err := client.GetMockupTask(context.Background(), "task-abc")

	require.NoError(t, err)
	assert.Equal(t, provider.MockupTaskCompleted, task.Status)
	assert.Equal(t, "https://img.example.com/m1.jpg", task.FirstMockupURL())
}

func TestClient_ShippingRates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shipping/rates", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": []map[string]any{
				{"id": "STANDARD", "name": "Flat Rate", "rate": "4.99", "currency": "USD"},
				{"id": "EXPRESS", "name": "Express", "rate": "12.50", "currency": "USD"},
			},
		})
	})

	rates, err := client.ShippingRates(context.Background(), provider.Address{
		Name:        "Jane Doe",
		Address1:    "1 Main St",
		City:        "Springfield",
		CountryCode: "US",
		Zip:         "12345",
	}, []provider.RateItem{{VariantID: 12, Quantity: 1}})

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "STANDARD", rates[0].ID)
	assert.True(t, rates[0].Rate.Equal(decimal.RequireFromString("4.99")))
}

func TestClient_CreateOrder(t *testing.T) {
	var gotBody createOrderRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"code":   200,
			"result": map[string]any{"id": 777, "status": "pending"},
		})
	})

	result, err := client.CreateOrder(context.Background(), provider.OrderRequest{
		Recipient: provider.Address{Name: "Jane Doe", Address1: "1 Main St", City: "Springfield", CountryCode: "US", Zip: "12345"},
		Items:     []provider.OrderItem{{VariantID: 12, Quantity: 2, FileURL: "https://cdn.example.com/art.png"}},
		RetailCosts: provider.RetailCosts{
			Currency: "USD",
			Subtotal: decimal.RequireFromString("59.98"),
			Shipping: decimal.RequireFromString("5.99"),
			Total:    decimal.RequireFromString("65.97"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(777), result.ID)
	assert.Equal(t, "pending", result.Status)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, "59.98", gotBody.RetailCosts.Subtotal)
	assert.Equal(t, "65.97", gotBody.RetailCosts.Total)
	require.Len(t, gotBody.Items[0].Files, 1)
	assert.Equal(t, "https://cdn.example.com/art.png", gotBody.Items[0].Files[0].URL)
}

func TestClient_GetOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/777", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": map[string]any{
				"id":     777,
				"status": "fulfilled",
				"shipments": []map[string]any{
					{"tracking_number": "TRK1", "tracking_url": "https://track.example.com/TRK1"},
				},
			},
		})
	})

	snapshot, err := client.GetOrder(context.Background(), 777)

	require.NoError(t, err)
	assert.Equal(t, "fulfilled", snapshot.Status)
	require.Len(t, snapshot.Shipments, 1)
	assert.Equal(t, "TRK1", snapshot.Shipments[0].TrackingNumber)
}

func TestClient_ListProducts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/products", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"code": 200,
			"result": []map[string]any{
				{
					"id":   5,
					"name": "Classic Tee",
					"variants": []map[string]any{
						{"id": 12, "name": "Classic Tee M", "size": "M", "color": "Black", "retail_price": "29.99", "availability_status": "active"},
					},
				},
			},
		})
	})

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Classic Tee", products[0].Name)
	require.Len(t, products[0].Variants, 1)
	assert.True(t, products[0].Variants[0].RetailPrice.Equal(decimal.RequireFromString("29.99")))
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"code":429,"error":{"message":"Too many requests"}}`,
			wantCode:   "RATE_LIMITED",
		},
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"code":401,"error":{"message":"Invalid token"}}`,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "forbidden",
			statusCode: http.StatusForbidden,
			body:       `{"code":403,"error":{"message":"No access"}}`,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "provider error with message",
			statusCode: http.StatusBadRequest,
			body:       `{"code":400,"error":{"reason":"BadRequest","message":"Variant 99 not found"}}`,
			wantCode:   "PROVIDER_FAILED",
			wantMsg:    "Variant 99 not found",
		},
		{
			name:       "provider error without parseable body",
			statusCode: http.StatusBadGateway,
			body:       `upstream exploded`,
			wantCode:   "PROVIDER_FAILED",
			wantMsg:    "upstream exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			})

			_, err := client.GetMockupTask(context.Background(), "task-abc")

			require.Error(t, err)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.wantCode, domainErr.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, domainErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"result":`))
	})

	_, err := client.GetMockupTask(context.Background(), "task-abc")

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PROVIDER_FAILED", domainErr.Code)
}
