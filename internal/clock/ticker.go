// Package clock renders the wall-clock time into the widget once a second.
package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/snowball/internal/ui"
)

// Layout is the displayed time format (HH:MM:SS).
const Layout = "15:04:05"

// DefaultInterval is the tick period.
const DefaultInterval = time.Second

// Format renders t as HH:MM:SS in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Ticker writes the current time to the window on every tick. Ticks are
// produced on a goroutine and rendered on the UI loop via the scheduler.
type Ticker struct {
	window   *ui.Ref
	sched    ui.Scheduler
	logger   *slog.Logger
	now      func() time.Time
	interval time.Duration

	mu        sync.Mutex
	listeners []func(now time.Time)
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithNow overrides the time source.
func WithNow(now func() time.Time) Option {
	return func(t *Ticker) {
		t.now = now
	}
}

// WithInterval overrides the tick period.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// NewTicker creates a ticker bound to the given window and UI scheduler.
func NewTicker(window *ui.Ref, sched ui.Scheduler, logger *slog.Logger, opts ...Option) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Ticker{
		window:   window,
		sched:    sched,
		logger:   logger,
		now:      time.Now,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnTick registers fn to run on the UI loop after each render.
func (t *Ticker) OnTick(fn func(now time.Time)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Tick performs one step. It must run on the UI loop. The render is
// skipped once the window is gone; listeners still run.
func (t *Ticker) Tick() {
	now := t.now()
	if w, ok := t.window.Upgrade(); ok {
		w.SetTime(Format(now))
	}

	t.mu.Lock()
	listeners := make([]func(time.Time), len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(now)
	}
}

// Run renders once immediately and then once per interval until ctx is
// cancelled. It blocks; start it on its own goroutine.
func (t *Ticker) Run(ctx context.Context) {
	t.sched.Invoke(t.Tick)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Debug("clock ticker started", "interval", t.interval)
	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("clock ticker stopped")
			return
		case <-ticker.C:
			t.sched.Invoke(t.Tick)
		}
	}
}
