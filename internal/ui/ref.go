package ui

import "sync/atomic"

// Surface is the part of the widget window the core components touch.
// Positions are reported in physical pixels and set in logical units;
// the implementation converts using its current scale factor.
type Surface interface {
	// Position returns the physical top-left corner of the window.
	Position() (x, y int)
	// ScaleFactor returns the display scale factor (physical / logical).
	ScaleFactor() float64
	// SetLogicalPosition moves the window's top-left corner.
	SetLogicalPosition(x, y float64)
	// SetTime updates the displayed wall-clock time.
	SetTime(text string)
	// SetWeather updates the weather summary field.
	SetWeather(text string)
	// Hide removes the window from screen without destroying it.
	Hide()
}

// LogicalPosition converts a surface's physical position to logical units.
func LogicalPosition(s Surface) (float64, float64) {
	x, y := s.Position()
	scale := s.ScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	return float64(x) / scale, float64(y) / scale
}

// Ref is a non-owning handle to the widget window. Callbacks hold a Ref
// rather than the window itself, and must call Upgrade before every use.
// Once Release has been called, Upgrade reports false forever.
type Ref struct {
	target atomic.Pointer[surfaceBox]
}

// surfaceBox exists because atomic.Pointer needs a concrete type.
type surfaceBox struct {
	s Surface
}

// NewRef returns a live handle to s.
func NewRef(s Surface) *Ref {
	r := &Ref{}
	if s != nil {
		r.target.Store(&surfaceBox{s: s})
	}
	return r
}

// Upgrade returns the window if it is still alive.
func (r *Ref) Upgrade() (Surface, bool) {
	if r == nil {
		return nil, false
	}
	b := r.target.Load()
	if b == nil {
		return nil, false
	}
	return b.s, true
}

// Alive reports whether the window has not been released yet.
func (r *Ref) Alive() bool {
	_, ok := r.Upgrade()
	return ok
}

// Release marks the window as torn down. Safe to call more than once.
func (r *Ref) Release() {
	if r == nil {
		return
	}
	r.target.Store(nil)
}
