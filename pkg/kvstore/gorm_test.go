package kvstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r70610363/swiftcart-backend/pkg/config"
)

func setupSQLiteStore(t *testing.T) *gormStore {
	t.Helper()

	cfg := config.StoreConfig{
		Driver:       config.StoreDriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		MaxOpenConns: 1,
	}
	store, err := newGormStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestGormStoreSetGetRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "swiftcart_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "swiftcart_cart", `[{"id":"p-1001"}]`))

	value, ok, err := store.Get(ctx, "swiftcart_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p-1001"}]`, value)
}

func TestGormStoreSetOverwrites(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "swiftcart_user", `{"id":"u-1"}`))
	require.NoError(t, store.Set(ctx, "swiftcart_user", `{"id":"u-2"}`))

	value, ok, err := store.Get(ctx, "swiftcart_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"u-2"}`, value)
}

func TestGormStoreRemove(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "swiftcart_checkout", `[]`))
	require.NoError(t, store.Remove(ctx, "swiftcart_checkout"))

	_, ok, err := store.Get(ctx, "swiftcart_checkout")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing a missing key is not an error.
	require.NoError(t, store.Remove(ctx, "swiftcart_checkout"))
}

func TestGormStorePing(t *testing.T) {
	store := setupSQLiteStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StoreConfig{Driver: "dynamo"}, config.RedisConfig{}, nil)
	require.Error(t, err)
}
