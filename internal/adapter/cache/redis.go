package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/storefront/internal/cart"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const defaultTTL = 72 * time.Hour

// CartSnapshots stores cart lines as JSON under cart:{session}.
type CartSnapshots struct {
	client  redis.UniversalClient
	baseTTL time.Duration
}

var _ cart.Snapshotter = (*CartSnapshots)(nil)

func NewCartSnapshots(client redis.UniversalClient, ttl time.Duration) *CartSnapshots {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &CartSnapshots{client: client, baseTTL: ttl}
}

func (r *CartSnapshots) Load(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	data, err := r.client.Get(ctx, cacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return lines, nil
}

func (r *CartSnapshots) Save(ctx context.Context, sessionID string, lines []model.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, cacheKey(sessionID), payload, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *CartSnapshots) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cacheKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
