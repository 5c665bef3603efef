package display

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/snowball/internal/audio"
	"github.com/jmylchreest/snowball/internal/clock"
	"github.com/jmylchreest/snowball/internal/config"
	"github.com/jmylchreest/snowball/internal/dbus"
	"github.com/jmylchreest/snowball/internal/drag"
	"github.com/jmylchreest/snowball/internal/lifecycle"
	"github.com/jmylchreest/snowball/internal/notify"
	"github.com/jmylchreest/snowball/internal/theme"
	"github.com/jmylchreest/snowball/internal/ui"
	"github.com/jmylchreest/snowball/internal/weather"
)

const appID = "io.github.jmylchreest.snowball"

// Options configures Run.
type Options struct {
	Config    *config.WidgetConfig
	Logger    *slog.Logger
	UserAgent string
}

// mainLoop hands closures to the GTK main loop.
var mainLoop = ui.SchedulerFunc(func(fn func()) {
	glib.IdleAdd(fn)
})

// Run starts the GTK application and blocks until it exits. It returns the
// process exit status.
func Run(opts Options) int {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultWidgetConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := adw.NewApplication(appID, 0)

	var (
		startupFailed bool
		started       bool
		loader        *theme.Loader
		player        *audio.Player
		client        *dbus.Client
	)

	var cleanupOnce sync.Once
	cleanup := func() {
		cleanupOnce.Do(func() {
			cancel()
			if loader != nil {
				loader.StopWatching()
			}
			if player != nil {
				player.Close()
			}
			if client != nil {
				_ = client.Close()
			}
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			glib.IdleAdd(func() {
				app.Quit()
			})
		case <-ctx.Done():
		}
	}()

	app.ConnectActivate(func() {
		if started {
			logger.Debug("application already running")
			return
		}
		started = true

		if gdk.DisplayGetDefault() == nil {
			logger.Error("failed to start", "error", &DisplayError{Message: "no display available"})
			startupFailed = true
			app.Quit()
			return
		}

		loader = theme.NewLoader(mainLoop, logger)
		loader.Load(cfg.Theme.Name)
		loader.Apply(nil)
		loader.Watch(ctx)

		w, err := NewWidget(&app.Application, cfg, logger)
		if err != nil {
			logger.Error("failed to create widget", "error", err)
			startupFailed = true
			app.Quit()
			return
		}

		player = audio.NewPlayer(logger)
		player.SetVolume(float64(cfg.Alarm.Volume) / 100)
		if cfg.Alarm.SoundFile != "" {
			if err := player.Preload(cfg.Alarm.SoundFile); err != nil {
				logger.Warn("failed to preload alarm sound", "path", cfg.Alarm.SoundFile, "error", err)
			}
		}
		client = dbus.NewClient(logger)
		notifier := notify.NewNotifier(client, player, cfg.Alarm, logger)
		w.OnTimerFinished(func() {
			go notifier.TimerFinished(ctx)
		})
		w.OnCountdownStart(func() {
			go notifier.Dismiss(ctx)
		})

		w.AttachDrag(drag.NewController(w.Ref(), logger))

		closer := lifecycle.NewHandler(w.Ref(), logger, lifecycle.BeforeExit(cleanup))
		w.OnCloseRequest(closer.CloseRequested)

		ticker := clock.NewTicker(w.Ref(), mainLoop, logger)
		w.AttachClock(ticker)
		go ticker.Run(ctx)

		if cfg.Weather.Enabled {
			fetcher := weather.NewFetcher(weather.WithUserAgent(opts.UserAgent))
			job := weather.NewJob(fetcher, w.Ref(), mainLoop, logger)
			w.AttachWeather(job)
			job.Start(ctx)
		}

		w.Present()
		logger.Info("snowball ready")
	})

	app.ConnectShutdown(func() {
		logger.Debug("application shutting down")
		cleanup()
	})

	// GTK must not see our own command-line flags.
	status := app.Run(os.Args[:1])
	if startupFailed && status == 0 {
		status = 1
	}
	return status
}
