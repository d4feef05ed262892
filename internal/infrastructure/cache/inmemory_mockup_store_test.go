package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/backend/internal/domain/order"
)

func newClosedStore(t *testing.T) *InMemoryMockupStore {
	t.Helper()
	store := NewInMemoryMockupStore()
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInMemoryMockupStore_PutGet(t *testing.T) {
	store := newClosedStore(t)
	ctx := context.Background()

	mc := &order.MockupContext{ID: "mock-1", ProductID: 5, VariantID: 12}
	require.NoError(t, store.Put(ctx, mc, time.Hour))

	got, err := store.Get(ctx, "mock-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ProductID)
}

func TestInMemoryMockupStore_MissingKey(t *testing.T) {
	store := newClosedStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrMockupNotFound)
}

func TestInMemoryMockupStore_ExpiredKey(t *testing.T) {
	store := newClosedStore(t)
	ctx := context.Background()

	mc := &order.MockupContext{ID: "mock-1"}
	require.NoError(t, store.Put(ctx, mc, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "mock-1")
	assert.ErrorIs(t, err, order.ErrMockupNotFound)
}

func TestInMemoryMockupStore_Delete(t *testing.T) {
	store := newClosedStore(t)
	ctx := context.Background()

	mc := &order.MockupContext{ID: "mock-1"}
	require.NoError(t, store.Put(ctx, mc, time.Hour))
	require.NoError(t, store.Delete(ctx, "mock-1"))

	_, err := store.Get(ctx, "mock-1")
	assert.ErrorIs(t, err, order.ErrMockupNotFound)

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, "mock-1"))
}

func TestInMemoryMockupStore_PutOverwrites(t *testing.T) {
	store := newClosedStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &order.MockupContext{ID: "mock-1", ProductID: 5}, time.Hour))
	require.NoError(t, store.Put(ctx, &order.MockupContext{ID: "mock-1", ProductID: 6}, time.Hour))

	got, err := store.Get(ctx, "mock-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.ProductID)
}
