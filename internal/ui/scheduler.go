package ui

import "sync"

// Scheduler hands a closure to the UI loop. Invoke may be called from any
// goroutine; the closure always runs on the UI loop, after the work already
// queued there, and never concurrently with other UI callbacks.
type Scheduler interface {
	Invoke(fn func())
}

// SchedulerFunc adapts a plain function (for example glib.IdleAdd) to a Scheduler.
type SchedulerFunc func(fn func())

// Invoke calls f(fn).
func (f SchedulerFunc) Invoke(fn func()) {
	f(fn)
}

// Queue is a single-consumer Scheduler. Producers call Invoke from any
// goroutine; the owning loop calls Drain to run queued closures
// in FIFO order. It stands in for the toolkit main loop where one is not
// available, e.g. in the headless CLI and in tests.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	notify  chan struct{}
	closed  bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Invoke enqueues fn. Closures sent after Close are dropped.
func (q *Queue) Invoke(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Ready returns a channel that receives after new work has been queued.
func (q *Queue) Ready() <-chan struct{} {
	return q.notify
}

// Drain runs every queued closure, including ones queued by the closures
// themselves, and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return n
		}
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		fn()
		n++
	}
}

// Len returns the number of closures waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close drops pending work and rejects further Invoke calls.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.pending = nil
	q.mu.Unlock()
}
