// Package debounce collapses bursts of calls into a single execution of an action.
//
// A Debouncer either fires on the trailing edge (once the burst has been quiet
// for the configured period, with the arguments of the last call) or on the
// leading edge (immediately on the first call of a burst, ignoring the rest of
// the burst).
//
// # Usage
//
//	save := debounce.Wrap(func(loc entities.Location) {
//		store.SaveLocation(bookID, loc)
//	}, 500*time.Millisecond, false)
//
//	save(loc) // returns immediately, saves once the reader stops paging
package debounce

import (
	"sync"
	"time"
)

// Debouncer wraps an action taking a single argument of type T.
// Actions with several arguments take a struct.
//
// The zero value is not usable; construct with New.
type Debouncer[T any] struct {
	action  func(T)
	quiet   time.Duration
	leading bool

	mu    sync.Mutex
	timer *time.Timer
	// gen identifies the most recently armed timer. Callbacks of timers that
	// were superseded compare against it and do nothing.
	gen uint64

	// runMu orders invocations of action; a slow action delays the next one
	// instead of overlapping it.
	runMu sync.Mutex
}

// New creates a Debouncer. A negative quiet period is treated as zero.
func New[T any](action func(T), quiet time.Duration, leading bool) *Debouncer[T] {
	if quiet < 0 {
		quiet = 0
	}
	return &Debouncer[T]{
		action:  action,
		quiet:   quiet,
		leading: leading,
	}
}

// Wrap returns a debounced version of action. Each call to Wrap produces an
// independent instance with its own timer.
func Wrap[T any](action func(T), quiet time.Duration, leading bool) func(T) {
	return New(action, quiet, leading).Call
}

// WrapFunc is Wrap for actions without arguments.
func WrapFunc(action func(), quiet time.Duration, leading bool) func() {
	d := New(func(struct{}) { action() }, quiet, leading)
	return func() { d.Call(struct{}{}) }
}

// Call schedules the action. It never blocks on the action in trailing mode;
// in leading mode the first call of a burst runs the action before returning.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	idle := d.timer == nil
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen

	if d.leading {
		d.timer = time.AfterFunc(d.quiet, func() { d.settle(gen) })
		d.mu.Unlock()
		if idle {
			d.run(arg)
		}
		return
	}

	d.timer = time.AfterFunc(d.quiet, func() {
		if d.settle(gen) {
			d.run(arg)
		}
	})
	d.mu.Unlock()
}

// Pending reports whether a quiet period is currently running.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer[T]) run(arg T) {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	d.action(arg)
}

// settle returns the instance to idle if gen is still the current timer.
func (d *Debouncer[T]) settle(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	d.timer = nil
	return true
}
