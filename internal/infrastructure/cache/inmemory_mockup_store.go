package cache

import (
	"context"
	"sync"
	"time"

	"github.com/podstore/backend/internal/domain/order"
)

// InMemoryMockupStore implements order.MockupStore with a process-local map.
// Suitable for single-instance deployments and tests; contexts do not
// survive a restart.
type InMemoryMockupStore struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	done    chan struct{}
	once    sync.Once
}

type inMemoryEntry struct {
	context   *order.MockupContext
	expiresAt time.Time
}

// NewInMemoryMockupStore creates an in-memory mockup store with a background
// sweeper that evicts expired contexts
func NewInMemoryMockupStore() *InMemoryMockupStore {
	s := &InMemoryMockupStore{
		entries: make(map[string]inMemoryEntry),
		done:    make(chan struct{}),
	}
	go s.sweep(time.Minute)
	return s
}

// Put stores a mockup context with the given TTL
func (s *InMemoryMockupStore) Put(ctx context.Context, mc *order.MockupContext, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[mc.ID] = inMemoryEntry{
		context:   mc,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Get loads a mockup context by ID. Missing or expired keys return
// order.ErrMockupNotFound.
func (s *InMemoryMockupStore) Get(ctx context.Context, id string) (*order.MockupContext, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, order.ErrMockupNotFound
	}
	return entry.context, nil
}

// Delete removes a consumed mockup context
func (s *InMemoryMockupStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Close stops the background sweeper
func (s *InMemoryMockupStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *InMemoryMockupStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

var _ order.MockupStore = (*InMemoryMockupStore)(nil)
