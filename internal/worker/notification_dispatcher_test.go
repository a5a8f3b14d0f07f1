package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/storefront/internal/adapter/expo"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/notify"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type notifierStub struct {
	name     string
	mu       sync.Mutex
	events   []model.OrderEvent
	NotifyFn func(context.Context, model.OrderEvent) error
}

func (n *notifierStub) Name() string { return n.name }

func (n *notifierStub) Notify(ctx context.Context, event model.OrderEvent) error {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
	if n.NotifyFn != nil {
		return n.NotifyFn(ctx, event)
	}
	return nil
}

func (n *notifierStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type metricsStub struct {
	failed  atomic.Int32
	dropped atomic.Int32
}

func (m *metricsStub) NotificationFailed(string) { m.failed.Add(1) }
func (m *metricsStub) NotificationDropped()      { m.dropped.Add(1) }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewNotificationDispatcherDefaults(t *testing.T) {
	d := NewNotificationDispatcher(nil, 0, 0, testLogger(), nil)
	if d.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", d.workers)
	}
	if cap(d.jobs) != 1 {
		t.Fatalf("expected queue size default to 1, got %d", cap(d.jobs))
	}
}

func TestDispatcherFansOutToEveryNotifier(t *testing.T) {
	first := &notifierStub{name: "first"}
	second := &notifierStub{name: "second"}
	d := NewNotificationDispatcher([]notify.Notifier{first, second}, 8, 2, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	d.Start(ctx)

	d.Announce(model.OrderEvent{Type: model.EventOrderCreated, OrderID: "o1"})
	d.Announce(model.OrderEvent{Type: model.EventOrderCreated, OrderID: "o2"})

	waitFor(t, func() bool { return first.count() == 2 && second.count() == 2 })
	d.Stop()
}

func TestDispatcherFailuresAreCountedNotPropagated(t *testing.T) {
	failing := &notifierStub{name: "failing", NotifyFn: func(context.Context, model.OrderEvent) error {
		return errors.New("unreachable")
	}}
	healthy := &notifierStub{name: "healthy"}
	m := &metricsStub{}
	d := NewNotificationDispatcher([]notify.Notifier{failing, healthy}, 4, 1, testLogger(), m)

	d.Start(context.Background())
	d.Announce(model.OrderEvent{OrderID: "o1"})
	waitFor(t, func() bool { return healthy.count() == 1 })
	d.Stop()

	if m.failed.Load() != 1 {
		t.Fatalf("expected one failure, got %d", m.failed.Load())
	}
}

func TestDispatcherAnnounceNeverBlocks(t *testing.T) {
	m := &metricsStub{}
	d := NewNotificationDispatcher(nil, 1, 1, testLogger(), m)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.Announce(model.OrderEvent{OrderID: "o"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("announce blocked on a full queue")
	}
	if m.dropped.Load() != 4 {
		t.Fatalf("expected 4 dropped events, got %d", m.dropped.Load())
	}
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	n := &notifierStub{name: "n"}
	d := NewNotificationDispatcher([]notify.Notifier{n}, 4, 1, testLogger(), nil)

	d.Announce(model.OrderEvent{OrderID: "o1"})
	d.Announce(model.OrderEvent{OrderID: "o2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Stop()

	if n.count() != 2 {
		t.Fatalf("expected queued events delivered on stop, got %d", n.count())
	}
}

func TestDispatcherRetriesRateLimitedNotifier(t *testing.T) {
	var calls atomic.Int32
	n := &notifierStub{name: "expo", NotifyFn: func(context.Context, model.OrderEvent) error {
		if calls.Add(1) == 1 {
			return expo.TooManyRequestsError{RetryAfter: 10 * time.Millisecond}
		}
		return nil
	}}
	m := &metricsStub{}
	d := NewNotificationDispatcher([]notify.Notifier{n}, 1, 1, testLogger(), m)

	d.Start(context.Background())
	d.Announce(model.OrderEvent{OrderID: "o1"})
	waitFor(t, func() bool { return calls.Load() == 2 })
	d.Stop()

	if m.failed.Load() != 0 {
		t.Fatalf("expected retry to succeed, got %d failures", m.failed.Load())
	}
}

func TestDispatcherStopWithoutStart(t *testing.T) {
	d := NewNotificationDispatcher(nil, 1, 1, testLogger(), nil)
	d.Stop()
}

func TestNewNotificationDispatcherProvider(t *testing.T) {
	cfg := &config.Config{NotifyQueueSize: 16, NotifyWorkers: 3}
	d := newNotificationDispatcher(dispatcherParams{
		Notifiers: []notify.Notifier{&notifierStub{name: "n"}},
		Config:    cfg,
		Logger:    testLogger(),
		Metrics:   metrics.NewRegistry(),
	})
	if d.workers != 3 || cap(d.jobs) != 16 || len(d.notifiers) != 1 {
		t.Fatalf("unexpected dispatcher %+v", d)
	}
}
