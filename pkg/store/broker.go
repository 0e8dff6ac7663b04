package store

import (
	"context"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/scribedb/scribe/pkg/core"
)

// broker fans committed mutation events out to subscribers. Each
// subscriber gets its own buffered channel so a slow consumer never
// blocks the mutation path; events beyond the buffer are dropped.
type broker struct {
	mu     sync.Mutex
	buffer int
	subs   map[int]*subscriber
	nextID int
	closed bool
}

type subscriber struct {
	pattern string
	ch      chan core.Event
}

func newBroker(buffer int) *broker {
	return &broker{
		buffer: buffer,
		subs:   make(map[int]*subscriber),
	}
}

// subscribe registers a consumer whose category matches the glob
// pattern ("" and "*" match everything). The channel closes when ctx is
// cancelled or the broker shuts down.
func (b *broker) subscribe(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && pattern != "*" {
		// Validate eagerly so a bad glob fails at Watch, not per event.
		if _, err := doublestar.Match(pattern, ""); err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan core.Event)
		close(ch)
		return ch, nil
	}

	id := b.nextID
	b.nextID++
	sub := &subscriber{pattern: pattern, ch: make(chan core.Event, b.buffer)}
	b.subs[id] = sub

	go func() {
		<-ctx.Done()
		b.unsubscribe(id)
	}()

	return sub.ch, nil
}

func (b *broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}

// publish delivers an event to every matching subscriber without
// blocking the mutation path.
func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !matches(sub.pattern, e.Category) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			// Buffer full: the subscriber is too far behind; drop.
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}

func matches(pattern, category string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	ok, err := doublestar.Match(pattern, category)
	return err == nil && ok
}
