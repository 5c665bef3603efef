package theme

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a file-backed theme when it changes on disk. The parent
// directory is watched so that editors which save by rename are seen.
type Watcher struct {
	mu       sync.Mutex
	logger   *slog.Logger
	theme    *Theme
	onChange func(css string)

	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher for t. onChange receives the new CSS and runs
// on the watcher goroutine.
func NewWatcher(t *Theme, onChange func(css string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		theme:    t,
		onChange: onChange,
	}
}

// Start begins watching. Bundled themes are not watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw != nil {
		return nil
	}
	if w.theme == nil || w.theme.Bundled() {
		w.logger.Debug("not watching bundled theme")
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create theme watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.theme.Path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch theme directory: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.fsw = fsw
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(ctx, fsw, w.done)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.fsw == nil {
		w.mu.Unlock()
		return
	}
	cancel, done, fsw := w.cancel, w.done, w.fsw
	w.fsw = nil
	w.mu.Unlock()

	cancel()
	<-done
	_ = fsw.Close()
	w.logger.Debug("theme watcher stopped")
}

// Running reports whether the watcher goroutine is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fsw != nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	target := filepath.Clean(w.theme.Path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	changed, err := w.theme.Reload()
	if err != nil {
		// A rename-save briefly removes the file; the following Create retries.
		w.logger.Debug("failed to reload theme", "path", w.theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}
	w.logger.Info("theme file changed, reloading", "path", w.theme.Path)
	if w.onChange != nil {
		w.onChange(w.theme.CSS)
	}
}
