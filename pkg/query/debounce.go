package query

import (
	"sync"
	"time"
)

// DefaultDelay is the window within which rapid query-parameter changes
// collapse to a single evaluation.
const DefaultDelay = 300 * time.Millisecond

// Debouncer re-evaluates a query after the user stops changing its
// parameters. Repeated updates within the delay window reset the timer;
// only the latest parameters are ever evaluated, so intermediate states
// are superseded, never shown.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	run     func(Params)
	timer   *time.Timer
	latest  Params
	stopped bool
	wg      sync.WaitGroup
}

// NewDebouncer creates a debouncer that calls run with the latest
// parameters once they settle. A non-positive delay uses DefaultDelay.
func NewDebouncer(delay time.Duration, run func(Params)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, run: run}
}

// Update records new query parameters and restarts the settle window.
func (d *Debouncer) Update(p Params) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.latest = p
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush evaluates any pending parameters immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	if pending {
		d.wg.Done()
		d.timer = nil
	}
	p := d.latest
	stopped := d.stopped
	d.mu.Unlock()

	if pending && !stopped {
		d.run(p)
	}
}

// Stop discards any pending evaluation and waits for an in-flight one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
		d.timer = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Debouncer) fire() {
	defer d.wg.Done()

	d.mu.Lock()
	p := d.latest
	stopped := d.stopped
	d.timer = nil
	d.mu.Unlock()

	if !stopped {
		d.run(p)
	}
}
