// Package display implements the GTK4 widget window: a layer-shell surface
// holding the clock, weather summary and countdown controls.
package display
