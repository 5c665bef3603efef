// Package uitest provides an in-memory ui.Surface for tests.
package uitest

import (
	"math"
	"sync"
)

// Surface records everything written to it.
type Surface struct {
	mu sync.Mutex

	X, Y    float64 // logical position
	Scale   float64
	Time    string
	Weather string
	Hidden  bool

	// Calls lists method names in call order.
	Calls []string
	// Moves counts SetLogicalPosition calls.
	Moves int
}

// NewSurface returns a surface at logical (x, y) with the given scale factor.
func NewSurface(x, y, scale float64) *Surface {
	return &Surface{X: x, Y: y, Scale: scale}
}

func (s *Surface) record(name string) {
	s.Calls = append(s.Calls, name)
}

// Position returns the physical position, rounded to whole pixels.
func (s *Surface) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(math.Round(s.X * s.scale())), int(math.Round(s.Y * s.scale()))
}

// ScaleFactor returns the configured scale.
func (s *Surface) ScaleFactor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale()
}

func (s *Surface) scale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// SetLogicalPosition stores the new logical position.
func (s *Surface) SetLogicalPosition(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.X, s.Y = x, y
	s.Moves++
	s.record("SetLogicalPosition")
}

// Logical returns the stored logical position.
func (s *Surface) Logical() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.X, s.Y
}

// SetTime stores the time text.
func (s *Surface) SetTime(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Time = text
	s.record("SetTime")
}

// SetWeather stores the weather text.
func (s *Surface) SetWeather(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Weather = text
	s.record("SetWeather")
}

// Hide marks the surface hidden.
func (s *Surface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Hidden = true
	s.record("Hide")
}

// TimeText returns the last time written.
func (s *Surface) TimeText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Time
}

// WeatherText returns the last weather text written.
func (s *Surface) WeatherText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Weather
}

// Log returns a copy of the call log.
func (s *Surface) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Calls))
	copy(out, s.Calls)
	return out
}
