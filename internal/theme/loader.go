package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/snowball/internal/ui"
)

// Loader owns the application CSS provider.
type Loader struct {
	mu        sync.Mutex
	logger    *slog.Logger
	sched     ui.Scheduler
	provider  *gtk.CSSProvider
	themesDir string
	theme     *Theme
	watcher   *Watcher
}

// NewLoader creates a loader. Hot reloads are applied through sched so the
// provider is only touched on the UI loop.
func NewLoader(sched ui.Scheduler, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
	}
	return &Loader{
		logger:    logger,
		sched:     sched,
		provider:  gtk.NewCSSProvider(),
		themesDir: dir,
	}
}

// Load resolves name and loads it into the provider.
func (l *Loader) Load(name string) *Theme {
	t, found := Resolve(l.themesDir, name)
	if !found {
		l.logger.Warn("theme not found, using default", "theme", name)
	}

	l.mu.Lock()
	l.theme = t
	l.mu.Unlock()

	l.provider.LoadFromString(t.CSS)
	l.logger.Info("loaded theme", "name", t.Name, "path", t.Path)
	return t
}

// Apply attaches the provider to display, or the default display when nil.
func (l *Loader) Apply(display *gdk.Display) {
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(display, l.provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// Watch hot-reloads the current theme until ctx is done or StopWatching is
// called.
func (l *Loader) Watch(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
	if l.theme == nil || l.theme.Bundled() {
		return
	}

	name := l.theme.Name
	l.watcher = NewWatcher(l.theme, func(css string) {
		l.sched.Invoke(func() {
			l.provider.LoadFromString(css)
			l.logger.Info("hot-reloaded theme", "name", name)
		})
	}, l.logger)

	if err := l.watcher.Start(ctx); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
		l.watcher = nil
	}
}

// StopWatching stops hot reload.
func (l *Loader) StopWatching() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}
