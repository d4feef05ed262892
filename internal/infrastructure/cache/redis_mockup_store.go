package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/podstore/backend/internal/domain/order"
)

// RedisMockupStore implements order.MockupStore backed by Redis.
// This is the production store: mockup generation and order creation may be
// handled by different instances, so the context has to live off-process.
type RedisMockupStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisMockupStore creates a Redis-backed mockup store
func NewRedisMockupStore(cfg RedisConfig) (*RedisMockupStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisMockupStore{
		client:    client,
		keyPrefix: "mockup:context:",
	}, nil
}

// NewRedisMockupStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisMockupStoreWithClient(client *redis.Client, keyPrefix string) *RedisMockupStore {
	if keyPrefix == "" {
		keyPrefix = "mockup:context:"
	}
	return &RedisMockupStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Put stores a mockup context with the given TTL
func (s *RedisMockupStore) Put(ctx context.Context, mc *order.MockupContext, ttl time.Duration) error {
	data, err := json.Marshal(mc)
	if err != nil {
		return fmt.Errorf("failed to marshal mockup context: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+mc.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store mockup context: %w", err)
	}
	return nil
}

// Get loads a mockup context by ID. Missing or expired keys return
// order.ErrMockupNotFound.
func (s *RedisMockupStore) Get(ctx context.Context, id string) (*order.MockupContext, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, order.ErrMockupNotFound
		}
		return nil, fmt.Errorf("failed to load mockup context: %w", err)
	}

	var mc order.MockupContext
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mockup context: %w", err)
	}
	return &mc, nil
}

// Delete removes a consumed mockup context. Deleting a missing key is not
// an error.
func (s *RedisMockupStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete mockup context: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection
func (s *RedisMockupStore) Close() error {
	return s.client.Close()
}

var _ order.MockupStore = (*RedisMockupStore)(nil)
