package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/cart"
	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the cart snapshot store. Without a Redis address carts
// live in memory only.
var Module = fx.Options(
	fx.Provide(newSnapshotter),
)

type snapshotParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newSnapshotter(p snapshotParams) cart.Snapshotter {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("redis address not set, carts are kept in memory")
		return cart.NopSnapshotter{}
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis unavailable, cart snapshots will fail", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewCartSnapshots(client, p.Config.CartTTL)
}
