package products

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher reloads a collection from the repository after a fixed delay.
// It is the reconciliation leg of the status toggle: best-effort, its
// failures are logged but never surfaced, and the optimistic state stays
// authoritative until it completes. Close cancels any pending reload so the
// timer cannot fire after the owning session workspace is gone.
type Refresher struct {
	delay   time.Duration
	timeout time.Duration
	load    func(ctx context.Context) ([]Product, error)
	apply   func([]Product)
	logger  *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func NewRefresher(delay time.Duration, load func(ctx context.Context) ([]Product, error), apply func([]Product), logger *slog.Logger) *Refresher {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Refresher{
		delay:   delay,
		timeout: 5 * time.Second,
		load:    load,
		apply:   apply,
		logger:  logger,
	}
}

// Schedule arms (or re-arms) the deferred reload. Fire-and-forget.
func (r *Refresher) Schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.run)
}

func (r *Refresher) run() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	items, err := r.load(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("deferred product refresh failed", "err", err)
		}
		return
	}
	r.apply(items)
}

// Close cancels any pending reload and disarms future schedules.
func (r *Refresher) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
