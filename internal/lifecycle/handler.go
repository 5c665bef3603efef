// Package lifecycle handles the window's close request.
package lifecycle

import (
	"log/slog"
	"os"

	"github.com/jmylchreest/snowball/internal/ui"
)

// Handler hides the window and exits the process on close.
type Handler struct {
	window *ui.Ref
	logger *slog.Logger
	exit   func(code int)
	before []func()
}

// Option configures a Handler.
type Option func(*Handler)

// WithExit replaces os.Exit.
func WithExit(exit func(code int)) Option {
	return func(h *Handler) {
		h.exit = exit
	}
}

// BeforeExit registers fn to run after the window is hidden and before exit.
func BeforeExit(fn func()) Option {
	return func(h *Handler) {
		h.before = append(h.before, fn)
	}
}

// NewHandler creates a close handler for window.
func NewHandler(window *ui.Ref, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		window: window,
		logger: logger,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CloseRequested hides the window if it is still live and terminates the
// process with status 0. Background work is not waited for.
func (h *Handler) CloseRequested() {
	if w, ok := h.window.Upgrade(); ok {
		w.Hide()
	}
	for _, fn := range h.before {
		fn()
	}
	h.logger.Info("window closed, exiting")
	h.exit(0)
}
