// Package debounce provides cancellable rate-limiting wrappers around
// callbacks: trailing-edge debouncing for coalescing bursts (search-as-you-type)
// and leading-edge throttling for capping invocation frequency.
package debounce

import (
	"sync"
	"time"
)

// Debouncer invokes fn with the most recent value once no Call has arrived
// for a full quiet window. Earlier values within the window are superseded,
// never delivered.
type Debouncer[T any] struct {
	window time.Duration
	fn     func(T)

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Call schedules fn(v) after the quiet window, restarting the window if a
// previous call is still pending.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.fn(v)
		}
	})
}

// Stop cancels any pending invocation and releases the timer. The debouncer
// accepts no further calls afterwards.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler invokes fn at most once per window, on the leading edge. Calls
// arriving inside an open window are dropped.
type Throttler[T any] struct {
	window time.Duration
	fn     func(T)

	mu   sync.Mutex
	last time.Time
}

// NewThrottler creates a throttler with the given minimum interval.
func NewThrottler[T any](window time.Duration, fn func(T)) *Throttler[T] {
	return &Throttler[T]{window: window, fn: fn}
}

// Call invokes fn(v) immediately if the window has elapsed since the last
// invocation, and reports whether the call went through.
func (t *Throttler[T]) Call(v T) bool {
	t.mu.Lock()
	now := time.Now()
	if !t.last.IsZero() && now.Sub(t.last) < t.window {
		t.mu.Unlock()
		return false
	}
	t.last = now
	t.mu.Unlock()

	t.fn(v)
	return true
}
