package fulfillment

import (
	"github.com/podstore/backend/internal/domain/shared"
)

// DefaultBaseURL is the production endpoint of the fulfillment API
const DefaultBaseURL = "https://api.printful.com"

// Config holds the fulfillment API client configuration
type Config struct {
	// BaseURL of the provider API, without trailing slash
	BaseURL string
	// APIKey is the bearer credential. Required.
	APIKey string
	// StoreID scopes requests to a store account; sent as a header when set
	StoreID string
	// TimeoutSeconds is the per-request HTTP timeout
	TimeoutSeconds int
}

// Validate checks the configuration. A missing API key is fatal: every
// component that talks to the provider refuses to start without it.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return shared.NewDomainError("UNAUTHORIZED", "Fulfillment API key not configured")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
