package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ErrSnapshotMiss indicates no snapshot is stored for a session.
var ErrSnapshotMiss = errors.New("cart snapshot miss")

const snapshotTimeout = 2 * time.Second

// Snapshotter persists cart contents between process restarts.
type Snapshotter interface {
	Load(ctx context.Context, sessionID string) ([]model.CartLine, error)
	Save(ctx context.Context, sessionID string, lines []model.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

// NopSnapshotter keeps carts in memory only.
type NopSnapshotter struct{}

func (NopSnapshotter) Load(context.Context, string) ([]model.CartLine, error) {
	return nil, ErrSnapshotMiss
}
func (NopSnapshotter) Save(context.Context, string, []model.CartLine) error { return nil }
func (NopSnapshotter) Delete(context.Context, string) error                 { return nil }

type session struct {
	store   *Store
	touched time.Time
}

// Registry maps cart session ids to carts and evicts idle ones.
type Registry struct {
	snapshots Snapshotter
	idle      time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry builds a registry. A nil snapshotter keeps carts in memory.
func NewRegistry(snapshots Snapshotter, idle time.Duration, logger *slog.Logger) *Registry {
	if snapshots == nil {
		snapshots = NopSnapshotter{}
	}
	if idle <= 0 {
		idle = time.Hour
	}
	return &Registry{
		snapshots: snapshots,
		idle:      idle,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// Get returns the cart of sessionID, restoring a stored snapshot on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[sessionID]; ok {
		s.touched = r.now()
		return s.store
	}

	store := NewStore()
	lines, err := r.snapshots.Load(ctx, sessionID)
	switch {
	case err == nil:
		store.Restore(lines)
	case !errors.Is(err, ErrSnapshotMiss):
		r.logger.Warn("cart snapshot load failed", slog.String("session", sessionID), slog.String("error", err.Error()))
	}

	store.Subscribe(func(lines []model.CartLine) {
		r.persist(sessionID, lines)
	})
	r.sessions[sessionID] = &session{store: store, touched: r.now()}
	return store
}

// Len returns the number of carts held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Prune drops carts not accessed within the idle window. Snapshots stay in
// the snapshotter until they expire there.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, s := range r.sessions {
		if s.touched.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Start launches the background janitor pruning idle carts every interval.
func (r *Registry) Start(ctx context.Context, interval time.Duration) {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	if r.cancel != nil {
		return
	}
	if interval <= 0 {
		interval = r.idle
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if n := r.Prune(); n > 0 {
					r.logger.Info("idle carts pruned", slog.Int("count", n))
				}
			}
		}
	}()
}

// Stop terminates the janitor.
func (r *Registry) Stop() {
	r.runMu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.runMu.Unlock()
	r.wg.Wait()
}

func (r *Registry) persist(sessionID string, lines []model.CartLine) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	var err error
	if len(lines) == 0 {
		err = r.snapshots.Delete(ctx, sessionID)
	} else {
		err = r.snapshots.Save(ctx, sessionID, lines)
	}
	if err != nil {
		r.logger.Warn("cart snapshot write failed", slog.String("session", sessionID), slog.String("error", err.Error()))
	}
}
