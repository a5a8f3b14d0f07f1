package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/notify"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module provides the notification dispatcher, also bound as the order
// announcer of the use cases.
var Module = fx.Provide(
	newNotificationDispatcher,
	func(d *NotificationDispatcher) usecase.Announcer { return d },
)

type dispatcherParams struct {
	fx.In

	Notifiers []notify.Notifier
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Registry
}

func newNotificationDispatcher(p dispatcherParams) *NotificationDispatcher {
	return NewNotificationDispatcher(p.Notifiers, p.Config.NotifyQueueSize, p.Config.NotifyWorkers, p.Logger, p.Metrics)
}
