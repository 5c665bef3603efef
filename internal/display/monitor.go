package display

import (
	"log/slog"
	"unsafe"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// selectMonitor returns the 1-based monitor index, or nil to let the
// compositor choose. Out-of-range indexes fall back to the first monitor.
func selectMonitor(display *gdk.Display, index int, logger *slog.Logger) *gdk.Monitor {
	if display == nil || index <= 0 {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors available")
		return nil
	}

	i := uint(index - 1)
	if i >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", index,
			"available", monitors.NItems(),
		)
		i = 0
	}
	return wrapMonitor(monitors.Item(i))
}

// wrapMonitor wraps a list item as a gdk.Monitor. gotk4 does not export
// its own wrapper; gdk.Monitor embeds *glib.Object, so the layouts match.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}

func placeOnMonitor(window *gtk.Window, monitor *gdk.Monitor) {
	if monitor == nil {
		return
	}
	layershell.SetMonitor(window, monitor)
}
