package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/events"
	"github.com/polkiloo/storefront/internal/config"
)

// Module provides the notifiers every order event fans out to.
var Module = fx.Options(
	fx.Provide(
		newHub,
		NewPushNotifier,
		newNotifiers,
	),
	fx.Invoke(registerLifecycle),
)

func newHub(cfg *config.Config, logger *slog.Logger) *Hub {
	return NewHub(logger, cfg.CORSOrigins...)
}

func newNotifiers(hub *Hub, push *PushNotifier, publisher *events.Publisher) []Notifier {
	notifiers := []Notifier{hub, push}
	if publisher.Enabled() {
		notifiers = append(notifiers, publisher)
	}
	return notifiers
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.Close()
			return nil
		},
	})
}
