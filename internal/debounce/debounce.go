// Package debounce provides a single-slot timer: triggering again before
// the delay elapses supersedes the pending run instead of stacking a
// second one.
package debounce

import (
	"sync"
	"time"
)

// afterFunc is swapped out by tests.
var afterFunc = time.AfterFunc

type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
	fn    func()
}

func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Ensure initializes *slot if needed and returns it. The caller keeps the
// slot under its own lock; Ensure itself does no synchronization.
func Ensure(slot **Debouncer, delay time.Duration, fn func()) *Debouncer {
	if *slot == nil {
		*slot = New(delay, fn)
	}
	return *slot
}

// Trigger schedules fn after the delay, cancelling any pending run.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = afterFunc(d.delay, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if stale {
			return
		}
		d.fn()
	})
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
