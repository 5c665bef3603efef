package display

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/snowball/internal/clock"
	"github.com/jmylchreest/snowball/internal/config"
	"github.com/jmylchreest/snowball/internal/countdown"
	"github.com/jmylchreest/snowball/internal/drag"
	"github.com/jmylchreest/snowball/internal/theme"
	"github.com/jmylchreest/snowball/internal/ui"
	"github.com/jmylchreest/snowball/internal/weather"
)

const (
	labelStart  = "开始"
	labelCancel = "取消"
)

// Widget is the snowball window and its controls.
type Widget struct {
	cfg    *config.WidgetConfig
	logger *slog.Logger
	now    func() time.Time

	window  *gtk.Window
	body    *gtk.Box
	surface *LayerSurface
	ref     *ui.Ref

	weatherLbl *gtk.Label
	remaining  *gtk.Label
	minutes    *gtk.SpinButton
	toggle     *gtk.Button

	dragGesture *gtk.GestureDrag

	countdown   *countdown.Countdown
	weatherJob  *weather.Job
	schemeClass string

	onTimerFinished  func()
	onCountdownStart func()
	onCloseRequest   func()
}

// NewWidget builds the widget window for app. It is not shown until Present.
func NewWidget(app *gtk.Application, cfg *config.WidgetConfig, logger *slog.Logger) (*Widget, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultWidgetConfig()
	}
	if !layershell.IsSupported() {
		return nil, &DisplayError{Message: "compositor does not support wlr-layer-shell"}
	}

	w := &Widget{
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		countdown: countdown.New(),
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetTitle("snowball")
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)
	w.window.SetOpacity(cfg.Window.Opacity)
	w.window.AddCSSClass("snowball")

	layershell.InitForWindow(w.window)
	layershell.SetNamespace(w.window, "snowball")
	layershell.SetLayer(w.window, layerFor(cfg.Window.Layer))
	layershell.SetExclusiveZone(w.window, 0)
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeOnDemand)
	placeOnMonitor(w.window, selectMonitor(gdk.DisplayGetDefault(), cfg.Window.Monitor, logger))

	clockLbl := w.buildUI()
	w.surface = newLayerSurface(w.window, clockLbl, w.weatherLbl, float64(cfg.Window.X), float64(cfg.Window.Y))
	w.ref = ui.NewRef(w.surface)

	w.window.ConnectCloseRequest(func() bool {
		if w.onCloseRequest != nil {
			w.onCloseRequest()
		}
		// Only reached without a close handler; the handler exits the process.
		w.ref.Release()
		return false
	})

	w.applySchemeClass()
	return w, nil
}

func layerFor(layer string) layershell.Layer {
	if config.Layer(layer) == config.LayerOverlay {
		return layershell.LayerShellLayerOverlay
	}
	return layershell.LayerShellLayerTop
}

// buildUI creates the widget tree and returns the clock label.
func (w *Widget) buildUI() *gtk.Label {
	w.body = gtk.NewBox(gtk.OrientationVertical, 4)
	w.body.AddCSSClass("snowball-body")

	// Header: the drag handle.
	header := gtk.NewBox(gtk.OrientationHorizontal, 6)
	header.AddCSSClass("header")

	clockLbl := gtk.NewLabel(clock.Format(w.now()))
	clockLbl.AddCSSClass("clock")
	clockLbl.SetHExpand(true)
	clockLbl.SetXAlign(0)
	header.Append(clockLbl)

	closeBtn := gtk.NewButtonFromIconName("window-close-symbolic")
	closeBtn.AddCSSClass("flat")
	closeBtn.AddCSSClass("close")
	closeBtn.SetVAlign(gtk.AlignStart)
	closeBtn.ConnectClicked(func() {
		w.window.Close()
	})
	header.Append(closeBtn)
	w.body.Append(header)

	w.weatherLbl = gtk.NewLabel(weather.TextLoading)
	w.weatherLbl.AddCSSClass("weather")
	w.weatherLbl.SetXAlign(0)
	w.weatherLbl.SetVisible(w.cfg.Weather.Enabled)
	w.body.Append(w.weatherLbl)

	w.body.Append(w.buildCountdown())

	w.dragGesture = gtk.NewGestureDrag()
	w.dragGesture.SetButton(gdk.BUTTON_PRIMARY)
	header.AddController(w.dragGesture)

	w.window.SetChild(w.body)
	return clockLbl
}

func (w *Widget) buildCountdown() *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 2)
	box.AddCSSClass("countdown")

	row := gtk.NewBox(gtk.OrientationHorizontal, 6)

	w.remaining = gtk.NewLabel(countdown.FormatRemaining(w.cfg.Countdown.Default.Duration()))
	w.remaining.AddCSSClass("countdown-remaining")
	w.remaining.SetHExpand(true)
	w.remaining.SetXAlign(0)
	row.Append(w.remaining)

	w.minutes = gtk.NewSpinButtonWithRange(1, 600, 1)
	w.minutes.SetValue(w.cfg.Countdown.Default.Duration().Minutes())
	w.minutes.SetTooltipText("minutes")
	row.Append(w.minutes)

	w.toggle = gtk.NewButtonWithLabel(labelStart)
	w.toggle.ConnectClicked(w.toggleCountdown)
	row.Append(w.toggle)
	box.Append(row)

	if len(w.cfg.Countdown.Presets) > 0 {
		presets := gtk.NewBox(gtk.OrientationHorizontal, 4)
		for _, p := range w.cfg.Countdown.Presets {
			d := p.Duration()
			btn := gtk.NewButtonWithLabel(presetLabel(d))
			btn.AddCSSClass("preset")
			btn.ConnectClicked(func() {
				w.startCountdown(d)
			})
			presets.Append(btn)
		}
		box.Append(presets)
	}
	return box
}

func presetLabel(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return d.String()
}

func (w *Widget) toggleCountdown() {
	if w.countdown.Running() {
		w.countdown.Cancel()
		w.logger.Info("countdown cancelled")
		w.renderCountdown(w.now())
		return
	}
	w.startCountdown(time.Duration(w.minutes.ValueAsInt()) * time.Minute)
}

func (w *Widget) startCountdown(d time.Duration) {
	now := w.now()
	if err := w.countdown.Start(now, d); err != nil {
		w.logger.Warn("failed to start countdown", "duration", d, "error", err)
		return
	}
	w.logger.Info("countdown started", "duration", d)
	w.renderCountdown(now)
	if w.onCountdownStart != nil {
		w.onCountdownStart()
	}
}

func (w *Widget) renderCountdown(now time.Time) {
	w.remaining.RemoveCSSClass("finished")
	if deadline, ok := w.countdown.Deadline(); ok {
		w.remaining.SetText(countdown.FormatRemaining(w.countdown.Remaining(now)))
		w.remaining.SetTooltipText(countdown.FormatRemaining(w.countdown.Total()) + ", ends at " + clock.Format(deadline))
		w.remaining.AddCSSClass("running")
		w.toggle.SetLabel(labelCancel)
		return
	}
	w.remaining.SetTooltipText("")
	w.remaining.RemoveCSSClass("running")
	w.remaining.SetText(countdown.FormatRemaining(time.Duration(w.minutes.ValueAsInt()) * time.Minute))
	w.toggle.SetLabel(labelStart)
}

// onTick runs on the main loop once per clock tick.
func (w *Widget) onTick(now time.Time) {
	if w.countdown.Tick(now) {
		w.logger.Info("countdown finished")
		w.renderCountdown(now)
		w.remaining.SetText(countdown.FormatRemaining(0))
		w.remaining.AddCSSClass("finished")
		if w.onTimerFinished != nil {
			w.onTimerFinished()
		}
	} else if w.countdown.Running() {
		w.remaining.SetText(countdown.FormatRemaining(w.countdown.Remaining(now)))
	}

	if w.weatherJob != nil {
		if age := weather.Age(w.weatherJob.FetchedAt(), now); age != "" {
			w.weatherLbl.SetTooltipText("updated " + age)
		}
	}
}

// AttachDrag routes the header's drag gesture to c. Each update is treated
// as a delta: the window follows the pointer, so the gesture offset stays
// relative to the last applied position.
func (w *Widget) AttachDrag(c *drag.Controller) {
	w.dragGesture.ConnectDragBegin(func(startX, startY float64) {
		c.StartDrag(startX, startY)
	})
	w.dragGesture.ConnectDragUpdate(func(offsetX, offsetY float64) {
		c.MoveWindow(offsetX, offsetY)
	})
}

// AttachClock subscribes the countdown and tooltip refresh to t.
func (w *Widget) AttachClock(t *clock.Ticker) {
	t.OnTick(w.onTick)
}

// AttachWeather records the job whose fetch time feeds the tooltip.
func (w *Widget) AttachWeather(job *weather.Job) {
	w.weatherJob = job
}

// OnTimerFinished sets the callback run on the main loop when the countdown
// reaches zero.
func (w *Widget) OnTimerFinished(fn func()) {
	w.onTimerFinished = fn
}

// OnCountdownStart sets the callback run when a countdown starts.
func (w *Widget) OnCountdownStart(fn func()) {
	w.onCountdownStart = fn
}

// OnCloseRequest sets the callback run when the window is asked to close.
func (w *Widget) OnCloseRequest(fn func()) {
	w.onCloseRequest = fn
}

// Ref returns the liveness handle for the window.
func (w *Widget) Ref() *ui.Ref {
	return w.ref
}

// Present shows the window.
func (w *Widget) Present() {
	w.window.Present()
}

func (w *Widget) applySchemeClass() {
	scheme := config.ColorScheme(w.cfg.Theme.ColorScheme)
	sm := adw.StyleManagerGetDefault()
	update := func() {
		class := theme.SchemeClass(scheme, sm.Dark)
		if class == w.schemeClass {
			return
		}
		if w.schemeClass != "" {
			w.body.RemoveCSSClass(w.schemeClass)
		}
		w.body.AddCSSClass(class)
		w.schemeClass = class
	}
	update()
	if scheme == config.ColorSchemeSystem {
		sm.NotifyProperty("dark", update)
	}
}
