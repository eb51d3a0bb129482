package client

import (
	"sync"
	"time"
)

// debouncer runs fn once a quiet window has elapsed since the last Schedule.
// Each Schedule cancels and replaces the pending run; Stop cancels outright.
type debouncer struct {
	mu      sync.Mutex
	ritardo time.Duration
	timer   *time.Timer
	fn      func()
}

func newDebouncer(ritardo time.Duration, fn func()) *debouncer {
	return &debouncer{ritardo: ritardo, fn: fn}
}

func (d *debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.ritardo, d.fn)
}

// Stop cancels any pending run. A run already started is not interrupted.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
