package cache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/storefront/internal/cart"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*CartSnapshots, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartSnapshots(client, time.Hour), mr
}

func sampleLines() []model.CartLine {
	return []model.CartLine{
		{ProductID: "p1", Name: "Cola Light", UnitPrice: decimal.RequireFromString("19.99"), VATRate: 19, Quantity: 2},
		{ProductID: "p2", Name: "Simit", UnitPrice: decimal.RequireFromString("0.80"), VATRate: 7, Quantity: 10},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", sampleLines()))
	assert.True(t, mr.Exists("cart:s1"))

	ttl := mr.TTL("cart:s1")
	assert.GreaterOrEqual(t, ttl, time.Hour)
	assert.Less(t, ttl, time.Hour+5*time.Minute)

	lines, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Cola Light", lines[0].Name)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 10, lines[1].Quantity)
}

func TestLoadMiss(t *testing.T) {
	store, _ := setupTestRedis(t)
	_, err := store.Load(context.Background(), "unknown")
	assert.ErrorIs(t, err, cart.ErrSnapshotMiss)
}

func TestLoadInvalidJSON(t *testing.T) {
	store, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:broken", "{not json"))

	_, err := store.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal cart failed")
}

func TestLoadRedisError(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.Load(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get failed")
}

func TestDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	payload, _ := json.Marshal(sampleLines())
	require.NoError(t, mr.Set("cart:s1", string(payload)))

	require.NoError(t, store.Delete(ctx, "s1"))
	assert.False(t, mr.Exists("cart:s1"))
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestNewCartSnapshotsDefaultTTL(t *testing.T) {
	store := NewCartSnapshots(nil, 0)
	assert.Equal(t, defaultTTL, store.baseTTL)
}

func TestRegistryRestoresFromRedis(t *testing.T) {
	store, _ := setupTestRedis(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", sampleLines()))

	registry := cart.NewRegistry(store, time.Hour, logger)
	restored := registry.Get(ctx, "s1")
	assert.Len(t, restored.Lines(), 2)
}

func TestNewSnapshotter(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("memory only", func(t *testing.T) {
		lc := fxtest.NewLifecycle(t)
		s := newSnapshotter(snapshotParams{Lifecycle: lc, Config: &config.Config{}, Logger: logger})
		assert.IsType(t, cart.NopSnapshotter{}, s)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		lc := fxtest.NewLifecycle(t)
		s := newSnapshotter(snapshotParams{
			Lifecycle: lc,
			Config:    &config.Config{RedisAddress: mr.Addr(), CartTTL: time.Hour},
			Logger:    logger,
		})
		require.IsType(t, &CartSnapshots{}, s)
		lc.RequireStart()
		lc.RequireStop()
	})
}
