package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/podstore/backend/internal/domain/provider"
	"github.com/podstore/backend/internal/domain/shared"
)

// maxResponseSize limits response bodies to prevent memory exhaustion
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// Default print-area placement for the generated artwork. The storefront
// currently sells front-print products only.
const (
	printPlacement  = "front"
	printAreaWidth  = 1800
	printAreaHeight = 2400
	printWidth      = 1800
	printHeight     = 1800
	printTop        = 300
	printLeft       = 0
)

// Client is a typed client over the fulfillment provider's HTTP API.
// It signs every request with the configured bearer credential, classifies
// response codes and decodes payloads; it never retries.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a fulfillment API client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// CreateMockupTask submits a mockup render task for the product/variant with
// the customer's artwork and returns the provider's task key
func (c *Client) CreateMockupTask(ctx context.Context, imageURL string, productID, variantID int64) (string, error) {
	body := createTaskRequest{
		VariantIDs:   []int64{variantID},
		Format:       "jpg",
		Options:      []string{"Front"},
		OptionGroups: []string{"Flat"},
		Files: []taskFileModel{
			{
				Placement: printPlacement,
				ImageURL:  imageURL,
				Position: positionModel{
					AreaWidth:  printAreaWidth,
					AreaHeight: printAreaHeight,
					Width:      printWidth,
					Height:     printHeight,
					Top:        printTop,
					Left:       printLeft,
				},
			},
		},
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/mockup-generator/create-task/%d", productID), body)
	if err != nil {
		return "", err
	}

	var envelope mockupTaskEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", invalidPayload(err)
	}

	return envelope.Result.TaskKey, nil
}

// GetMockupTask fetches the current state of a mockup render task
func (c *Client) GetMockupTask(ctx context.Context, taskKey string) (*provider.MockupTask, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/mockup-generator/task?task_key="+taskKey, nil)
	if err != nil {
		return nil, err
	}

	var envelope mockupTaskEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, invalidPayload(err)
	}

	task := &provider.MockupTask{
		TaskKey: envelope.Result.TaskKey,
		Status:  envelope.Result.Status,
		Error:   envelope.Result.Error,
	}
	for _, m := range envelope.Result.Mockups {
		task.MockupURLs = append(task.MockupURLs, m.MockupURL)
	}

	return task, nil
}

// ShippingRates quotes shipping options for the destination and items
func (c *Client) ShippingRates(ctx context.Context, addr provider.Address, items []provider.RateItem) ([]provider.Rate, error) {
	body := ratesRequest{
		Recipient: toAddressModel(addr),
		Items:     make([]rateItemModel, 0, len(items)),
	}
	for _, item := range items {
		body.Items = append(body.Items, rateItemModel{VariantID: item.VariantID, Quantity: item.Quantity})
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/shipping/rates", body)
	if err != nil {
		return nil, err
	}

	var envelope ratesEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, invalidPayload(err)
	}

	rates := make([]provider.Rate, 0, len(envelope.Result))
	for _, r := range envelope.Result {
		rates = append(rates, provider.Rate{
			ID:       r.ID,
			Name:     r.Name,
			Rate:     r.Rate,
			Currency: r.Currency,
		})
	}

	return rates, nil
}

// CreateOrder submits a confirmed order for production
func (c *Client) CreateOrder(ctx context.Context, req provider.OrderRequest) (*provider.OrderResult, error) {
	body := createOrderRequest{
		Recipient: toAddressModel(req.Recipient),
		Items:     make([]orderItemModel, 0, len(req.Items)),
		RetailCosts: retailCostsModel{
			Currency: req.RetailCosts.Currency,
			Subtotal: req.RetailCosts.Subtotal.StringFixed(2),
			Shipping: req.RetailCosts.Shipping.StringFixed(2),
			Total:    req.RetailCosts.Total.StringFixed(2),
		},
	}
	for _, item := range req.Items {
		body.Items = append(body.Items, orderItemModel{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Files:     []orderFileItem{{URL: item.FileURL}},
		})
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/orders", body)
	if err != nil {
		return nil, err
	}

	var envelope orderEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, invalidPayload(err)
	}

	return &provider.OrderResult{
		ID:     envelope.Result.ID,
		Status: envelope.Result.Status,
	}, nil
}

// GetOrder fetches the provider's current view of an order
func (c *Client) GetOrder(ctx context.Context, fulfillmentOrderID int64) (*provider.OrderSnapshot, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", fulfillmentOrderID), nil)
	if err != nil {
		return nil, err
	}

	var envelope orderEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, invalidPayload(err)
	}

	snapshot := &provider.OrderSnapshot{
		ID:     envelope.Result.ID,
		Status: envelope.Result.Status,
	}
	for _, s := range envelope.Result.Shipments {
		snapshot.Shipments = append(snapshot.Shipments, provider.Shipment{
			TrackingNumber: s.TrackingNumber,
			TrackingURL:    s.TrackingURL,
		})
	}

	return snapshot, nil
}

// ListProducts fetches the store's catalog product definitions
func (c *Client) ListProducts(ctx context.Context) ([]provider.Product, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/store/products", nil)
	if err != nil {
		return nil, err
	}

	var envelope productsEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, invalidPayload(err)
	}

	products := make([]provider.Product, 0, len(envelope.Result))
	for _, p := range envelope.Result {
		product := provider.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
		}
		for _, v := range p.Variants {
			product.Variants = append(product.Variants, provider.ProductVariant{
				ID:           v.ID,
				Name:         v.Name,
				Size:         v.Size,
				Color:        v.Color,
				RetailPrice:  v.RetailPrice,
				Availability: v.Availability,
			})
		}
		products = append(products, product)
	}

	return products, nil
}

// doRequest performs an HTTP request against the provider API and classifies
// the response: 2xx returns the body, 429 is a rate-limit condition, 401/403
// an authentication failure, anything else a provider failure carrying the
// provider's error message when parseable
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("fulfillment: failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("fulfillment: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.config.StoreID != "" {
		req.Header.Set("X-PF-Store-Id", c.config.StoreID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("fulfillment: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, shared.ErrRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, shared.NewDomainError("UNAUTHORIZED", "Fulfillment API credential rejected")
	default:
		return nil, shared.NewDomainError("PROVIDER_FAILED",
			fmt.Sprintf("Fulfillment API request failed: %s", extractErrorMessage(respBody)))
	}
}

// extractErrorMessage pulls the provider's error message out of a failure
// body, falling back to the raw body when it is not parseable
func extractErrorMessage(body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// invalidPayload wraps a JSON decode failure on a 2xx response
func invalidPayload(err error) error {
	return shared.NewDomainError("PROVIDER_FAILED",
		fmt.Sprintf("Fulfillment API returned invalid JSON: %v", err))
}

func toAddressModel(addr provider.Address) addressModel {
	return addressModel{
		Name:        addr.Name,
		Address1:    addr.Address1,
		Address2:    addr.Address2,
		City:        addr.City,
		StateCode:   addr.StateCode,
		CountryCode: addr.CountryCode,
		Zip:         addr.Zip,
	}
}

// Ensure Client implements the gateway contract
var _ provider.Gateway = (*Client)(nil)
