// Package countdown implements the widget's countdown timer.
package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidDuration is returned when a countdown is started with a
// non-positive duration.
var ErrInvalidDuration = errors.New("countdown duration must be positive")

// Countdown counts down to a deadline. It does not own a timer: the
// widget drives it from the clock's once-per-second tick, and Tick
// reports the single moment the deadline is crossed.
type Countdown struct {
	mu       sync.Mutex
	deadline time.Time
	total    time.Duration
	running  bool
}

// New returns an idle countdown.
func New() *Countdown {
	return &Countdown{}
}

// Start arms the countdown to finish d after now, replacing any countdown
// already running.
func (c *Countdown) Start(now time.Time, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = now.Add(d)
	c.total = d
	c.running = true
	return nil
}

// Cancel stops a running countdown without finishing it.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// Running reports whether a countdown is armed.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Total returns the length of the most recently started countdown.
func (c *Countdown) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Remaining returns the time left, or zero when idle or expired.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return 0
	}
	left := c.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Deadline returns when the running countdown ends.
func (c *Countdown) Deadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline, c.running
}

// Tick advances the countdown to now. It returns true exactly once per
// Start: on the first tick at or after the deadline.
func (c *Countdown) Tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || now.Before(c.deadline) {
		return false
	}
	c.running = false
	return true
}

// FormatRemaining renders d as MM:SS, or H:MM:SS from one hour up.
// Partial seconds round up so a fresh 25m countdown reads 25:00.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64((d + time.Second - 1) / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
