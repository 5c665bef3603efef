package display

import (
	"math"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/snowball/internal/ui"
)

// LayerSurface is a layer-shell window anchored to the top-left screen
// corner. Its position is the pair of top/left margins, in logical pixels.
// All methods must be called on the GTK main loop.
type LayerSurface struct {
	window  *gtk.Window
	clock   *gtk.Label
	weather *gtk.Label

	x, y float64
}

var _ ui.Surface = (*LayerSurface)(nil)

func newLayerSurface(window *gtk.Window, clock, weather *gtk.Label, x, y float64) *LayerSurface {
	s := &LayerSurface{window: window, clock: clock, weather: weather}
	layershell.SetAnchor(window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeLeft, true)
	layershell.SetAnchor(window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(window, layershell.LayerShellEdgeRight, false)
	s.SetLogicalPosition(x, y)
	return s
}

// Position returns the window's top-left corner in physical pixels.
func (s *LayerSurface) Position() (int, int) {
	scale := s.ScaleFactor()
	return int(math.Round(s.x * scale)), int(math.Round(s.y * scale))
}

// ScaleFactor returns the output's integer scale.
func (s *LayerSurface) ScaleFactor() float64 {
	if f := s.window.ScaleFactor(); f > 0 {
		return float64(f)
	}
	return 1
}

// SetLogicalPosition moves the window by updating its margins.
func (s *LayerSurface) SetLogicalPosition(x, y float64) {
	s.x, s.y = x, y
	layershell.SetMargin(s.window, layershell.LayerShellEdgeLeft, int(math.Round(x)))
	layershell.SetMargin(s.window, layershell.LayerShellEdgeTop, int(math.Round(y)))
}

// SetTime sets the clock label.
func (s *LayerSurface) SetTime(text string) {
	s.clock.SetText(text)
}

// SetWeather sets the weather label.
func (s *LayerSurface) SetWeather(text string) {
	s.weather.SetText(text)
}

// Hide hides the window.
func (s *LayerSurface) Hide() {
	s.window.SetVisible(false)
}
