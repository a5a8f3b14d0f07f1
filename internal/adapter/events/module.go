package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the Kafka order event publisher.
var Module = fx.Options(
	fx.Provide(newPublisher),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) *Publisher {
	publisher := NewPublisher(p.Config.OrderTopic, p.Config.KafkaBrokers...)
	if !publisher.Enabled() {
		p.Logger.Info("kafka brokers not set, order events are not published")
		return publisher
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
