package ui_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/snowball/internal/ui"
	"github.com/jmylchreest/snowball/internal/ui/uitest"
)

func TestRef_UpgradeWhileAlive(t *testing.T) {
	s := uitest.NewSurface(10, 20, 1)
	ref := ui.NewRef(s)

	got, ok := ref.Upgrade()
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.True(t, ref.Alive())
}

func TestRef_Release(t *testing.T) {
	ref := ui.NewRef(uitest.NewSurface(0, 0, 1))
	ref.Release()
	ref.Release()

	got, ok := ref.Upgrade()
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.False(t, ref.Alive())
}

func TestRef_NilAndEmpty(t *testing.T) {
	var nilRef *ui.Ref
	_, ok := nilRef.Upgrade()
	assert.False(t, ok)
	nilRef.Release()

	_, ok = ui.NewRef(nil).Upgrade()
	assert.False(t, ok)
}

func TestLogicalPosition(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		scale float64
		wantX float64
		wantY float64
	}{
		{"unscaled", 100, 50, 1, 100, 50},
		{"hidpi", 100, 50, 2, 100, 50},
		{"zero scale treated as one", 7, 9, 0, 7, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := uitest.NewSurface(tt.x, tt.y, tt.scale)
			x, y := ui.LogicalPosition(s)
			assert.InDelta(t, tt.wantX, x, 1e-9)
			assert.InDelta(t, tt.wantY, y, 1e-9)
		})
	}
}

func TestQueue_FIFO(t *testing.T) {
	q := ui.NewQueue()
	var order []int
	for i := range 3 {
		q.Invoke(func() { order = append(order, i) })
	}
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_NestedInvokeRunsInSameDrain(t *testing.T) {
	q := ui.NewQueue()
	var order []string
	q.Invoke(func() {
		order = append(order, "outer")
		q.Invoke(func() { order = append(order, "inner") })
	})
	assert.Equal(t, 2, q.Drain())
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := ui.NewQueue()
	var wg sync.WaitGroup
	count := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Invoke(func() { count++ })
		}()
	}
	wg.Wait()
	q.Drain()
	assert.Equal(t, 50, count)
}

func TestQueue_ClosedDropsWork(t *testing.T) {
	q := ui.NewQueue()
	q.Invoke(func() { t.Fatal("ran after close") })
	q.Close()
	q.Invoke(func() { t.Fatal("ran after close") })
	assert.Equal(t, 0, q.Drain())
}

func TestQueue_ReadySignal(t *testing.T) {
	q := ui.NewQueue()
	q.Invoke(func() {})
	select {
	case <-q.Ready():
	default:
		t.Fatal("expected ready signal")
	}
}

func TestSchedulerFunc(t *testing.T) {
	ran := false
	var s ui.Scheduler = ui.SchedulerFunc(func(fn func()) { fn() })
	s.Invoke(func() { ran = true })
	assert.True(t, ran)
}
