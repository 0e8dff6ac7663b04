package kvfile

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of events per key. Filesystem writes often
// arrive as several fsnotify events for one logical change; only the
// last one within the window fires.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire(key) after the delay, resetting any pending timer
// for the same key so rapid repeats collapse into one firing.
// Each scheduled timer owns one WaitGroup slot, released when it fires
// or is stopped.
func (d *debouncer) add(key string, fire func(string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if prev, ok := d.timers[key]; ok {
		if prev.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		if d.timers[key] == t {
			delete(d.timers, key)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(key)
		}
	})
	d.timers[key] = t
}

// stopAndWait stops accepting events and waits for in-flight timers to
// finish, up to the given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
