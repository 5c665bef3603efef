package drag

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/snowball/internal/ui"
	"github.com/jmylchreest/snowball/internal/ui/uitest"
)

func newTestController(s *uitest.Surface) (*Controller, *ui.Ref) {
	ref := ui.NewRef(s)
	c := NewController(ref, nil)
	return c, ref
}

func TestMoveWindow_DeadZone(t *testing.T) {
	deltas := [][2]float64{
		{0, 0},
		{0.05, 0.05},
		{-0.099, 0.099},
		{0.0999, -0.0999},
		{-0.01, 0},
	}

	for _, d := range deltas {
		s := uitest.NewSurface(200, 150, 1)
		c, _ := newTestController(s)

		c.MoveWindow(d[0], d[1])

		x, y := s.Logical()
		assert.Equal(t, 200.0, x, "delta %v", d)
		assert.Equal(t, 150.0, y, "delta %v", d)
		assert.Zero(t, s.Moves, "delta %v should not move the window", d)
	}
}

func TestMoveWindow_AppliesDeltaOnce(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
	}{
		{"x only", 0.1, 0},
		{"y only", 0, -0.1},
		{"negative x above threshold", -0.5, 0.01},
		{"both", 12.5, -7.25},
		{"large", 300, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := uitest.NewSurface(100, 80, 1)
			c, _ := newTestController(s)
			beforeX, beforeY := ui.LogicalPosition(s)

			c.MoveWindow(tt.dx, tt.dy)

			x, y := s.Logical()
			assert.InDelta(t, beforeX+tt.dx, x, 1e-9)
			assert.InDelta(t, beforeY+tt.dy, y, 1e-9)
			assert.Equal(t, 1, s.Moves)
		})
	}
}

func TestMoveWindow_UsesLivePosition(t *testing.T) {
	s := uitest.NewSurface(10, 10, 1)
	c, _ := newTestController(s)

	c.StartDrag(5, 5)
	c.MoveWindow(10, 0)
	c.MoveWindow(10, 0)

	x, y := s.Logical()
	assert.InDelta(t, 30, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)
}

func TestMoveWindow_ScaledDisplay(t *testing.T) {
	// Physical (200, 100) at scale 2 is logical (100, 50).
	s := uitest.NewSurface(100, 50, 2)
	c, _ := newTestController(s)

	c.MoveWindow(4, -2)

	x, y := s.Logical()
	assert.InDelta(t, 104, x, 1e-9)
	assert.InDelta(t, 48, y, 1e-9)
	px, py := s.Position()
	assert.Equal(t, 208, px)
	assert.Equal(t, 96, py)
}

func TestMoveWindow_ReleasedWindow(t *testing.T) {
	s := uitest.NewSurface(0, 0, 1)
	c, ref := newTestController(s)
	ref.Release()

	c.MoveWindow(50, 50)
	assert.Zero(t, s.Moves)
}

func TestStartDrag_RecordsState(t *testing.T) {
	s := uitest.NewSurface(120, 60, 1.5)
	c, _ := newTestController(s)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	_, ok := c.State()
	require.False(t, ok)

	c.StartDrag(3.5, 4.25)

	st, ok := c.State()
	require.True(t, ok)
	assert.Equal(t, 180, st.OriginX)
	assert.Equal(t, 90, st.OriginY)
	assert.Equal(t, 3.5, st.PressX)
	assert.Equal(t, 4.25, st.PressY)
	assert.Equal(t, fixed, st.PressedAt)
}

func TestStartDrag_Overwrites(t *testing.T) {
	s := uitest.NewSurface(0, 0, 1)
	c, _ := newTestController(s)

	for i := 1; i <= 5; i++ {
		s.SetLogicalPosition(float64(i*10), float64(i*20))
		c.StartDrag(float64(i), float64(-i))
	}

	st, ok := c.State()
	require.True(t, ok)
	assert.Equal(t, 50, st.OriginX)
	assert.Equal(t, 100, st.OriginY)
	assert.Equal(t, 5.0, st.PressX)
	assert.Equal(t, -5.0, st.PressY)
}

func TestStartDrag_ReleasedWindowIsNoop(t *testing.T) {
	c, ref := newTestController(uitest.NewSurface(0, 0, 1))
	ref.Release()

	c.StartDrag(1, 1)

	_, ok := c.State()
	assert.False(t, ok)
}

func TestController_ConcurrentGestures(t *testing.T) {
	s := uitest.NewSurface(0, 0, 1)
	c, _ := newTestController(s)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.StartDrag(float64(i), float64(i))
			_, _ = c.State()
		}()
	}
	wg.Wait()

	_, ok := c.State()
	assert.True(t, ok)
}
