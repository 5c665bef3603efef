// Package drag moves the widget window in response to pointer drags.
package drag

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/jmylchreest/snowball/internal/ui"
)

// DeadZone is the smallest per-event movement, in logical units, that
// moves the window. Anything below it on both axes is pointer noise.
const DeadZone = 0.1

// State is the record captured when a drag gesture starts.
type State struct {
	OriginX   int     // Window physical x at press time
	OriginY   int     // Window physical y at press time
	PressX    float64 // Press point, logical units
	PressY    float64
	PressedAt time.Time
}

// Controller tracks the active drag gesture and repositions the window.
// Gesture callbacks may arrive from more than one context, so the drag
// state lives behind a mutex.
type Controller struct {
	window *ui.Ref
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	state *State
}

// NewController creates a controller for the given window handle.
func NewController(window *ui.Ref, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// StartDrag records the window's physical position and the press point,
// replacing any earlier gesture. It does nothing once the window is gone.
func (c *Controller) StartDrag(pressX, pressY float64) {
	w, ok := c.window.Upgrade()
	if !ok {
		return
	}

	x, y := w.Position()
	st := &State{
		OriginX:   x,
		OriginY:   y,
		PressX:    pressX,
		PressY:    pressY,
		PressedAt: c.now(),
	}

	c.mu.Lock()
	c.state = st
	c.mu.Unlock()

	c.logger.Debug("drag started", "origin_x", x, "origin_y", y, "press_x", pressX, "press_y", pressY)
}

// MoveWindow shifts the window by (dx, dy) logical units from wherever it
// is now. Each call applies its own delta once; it does not replay from
// the drag origin.
func (c *Controller) MoveWindow(dx, dy float64) {
	if math.Abs(dx) < DeadZone && math.Abs(dy) < DeadZone {
		return
	}

	w, ok := c.window.Upgrade()
	if !ok {
		return
	}

	x, y := ui.LogicalPosition(w)
	w.SetLogicalPosition(x+dx, y+dy)
}

// State returns a copy of the current drag record, if one exists.
func (c *Controller) State() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}
