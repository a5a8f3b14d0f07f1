package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/adapter/expo"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/notify"
)

const (
	deliveryTimeout = 10 * time.Second
	maxRetryAfter   = 5 * time.Second
)

// Metrics counts undelivered notifications.
type Metrics interface {
	NotificationFailed(notifier string)
	NotificationDropped()
}

type nopMetrics struct{}

func (nopMetrics) NotificationFailed(string) {}
func (nopMetrics) NotificationDropped()      {}

// NotificationDispatcher fans order events out to notifiers from a bounded
// queue served by a worker pool.
type NotificationDispatcher struct {
	notifiers []notify.Notifier
	workers   int
	logger    *slog.Logger
	metrics   Metrics

	jobs   chan model.OrderEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationDispatcher constructs the dispatcher. metrics may be nil.
func NewNotificationDispatcher(notifiers []notify.Notifier, queueSize, workers int, logger *slog.Logger, metrics Metrics) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &NotificationDispatcher{
		notifiers: notifiers,
		workers:   workers,
		logger:    logger,
		metrics:   metrics,
		jobs:      make(chan model.OrderEvent, queueSize),
	}
}

// Announce queues event without blocking. When the queue is full the event
// is dropped.
func (d *NotificationDispatcher) Announce(event model.OrderEvent) {
	select {
	case d.jobs <- event:
	default:
		d.metrics.NotificationDropped()
		d.logger.Warn("notification queue full, event dropped",
			slog.String("order", event.OrderID), slog.String("type", string(event.Type)))
	}
}

// Start launches the workers. Calling Start on a running dispatcher is a no-op.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop delivers queued events and waits for all workers to finish.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx)
			return
		case event := <-d.jobs:
			d.deliver(ctx, event)
		}
	}
}

func (d *NotificationDispatcher) drain(ctx context.Context) {
	for {
		select {
		case event := <-d.jobs:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, event model.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
	defer cancel()

	for _, n := range d.notifiers {
		err := n.Notify(ctx, event)
		var tooMany expo.TooManyRequestsError
		if errors.As(err, &tooMany) {
			d.logger.Warn("notifier rate limited", slog.String("notifier", n.Name()), slog.Duration("retry_after", tooMany.RetryAfter))
			wait := tooMany.RetryAfter
			if wait > maxRetryAfter {
				wait = maxRetryAfter
			}
			select {
			case <-ctx.Done():
			case <-time.After(wait):
				err = n.Notify(ctx, event)
			}
		}
		if err != nil {
			d.metrics.NotificationFailed(n.Name())
			d.logger.Error("order notification failed",
				slog.String("notifier", n.Name()),
				slog.String("order", event.OrderID),
				slog.String("error", err.Error()))
		}
	}
}
