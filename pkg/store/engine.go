// Package store owns the authoritative note collection.
//
// The engine keeps the collection in an in-memory cache loaded lazily from
// the backend on first access, and writes the whole collection back through
// the codec after every mutation. Mutations serialize through a single
// queue per engine: each one performs its read-modify-write against the
// last committed cache, so a favorite toggle can never be clobbered by a
// concurrent save carrying stale data. Reads are served from the committed
// cache without waiting on writers.
package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/scribedb/scribe/pkg/codec"
	"github.com/scribedb/scribe/pkg/core"
)

// Engine implements atomic get/put/delete/list over a core.Backend and
// maintains the category index and the known-category set.
type Engine struct {
	backend core.Backend
	logger  *slog.Logger
	clock   func() time.Time
	broker  *broker

	// writeMu is the mutation queue: one mutation at a time, arrival
	// order. Guards cache replacement and the backend write-through.
	writeMu chan struct{}

	cache *cache
}

// NewEngine creates a store engine on top of the given backend.
// The engine is the only component that touches the backend.
func NewEngine(backend core.Backend, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	e := &Engine{
		backend: backend,
		logger:  o.logger,
		clock:   o.clock,
		broker:  newBroker(o.eventBuffer),
		writeMu: make(chan struct{}, 1),
		cache:   newCache(),
	}
	return e
}

// List returns the full collection in persisted (insertion) order.
func (e *Engine) List(ctx context.Context) ([]core.Note, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return e.cache.snapshot(), nil
}

// Get retrieves a note by ID. Returns core.ErrNotFound on a miss.
func (e *Engine) Get(ctx context.Context, id int64) (core.Note, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return core.Note{}, err
	}
	n, ok := e.cache.get(id)
	if !ok {
		return core.Note{}, core.ErrNotFound
	}
	return n, nil
}

// Put persists a note. A zero ID gets a fresh unique one assigned from the
// clock (with a disambiguator on collision). An existing ID is replaced in
// place, preserving its position and its stored favorite flag — the
// favorite flag only changes through SetFavorite, which closes the
// lost-update window between a toggle and a save carrying a stale copy.
// Returns the note as stored.
func (e *Engine) Put(ctx context.Context, n core.Note) (core.Note, error) {
	if err := e.lockMutations(ctx); err != nil {
		return core.Note{}, err
	}
	defer e.unlockMutations()

	if err := e.loadLocked(ctx); err != nil {
		return core.Note{}, err
	}

	notes := e.cache.snapshot()
	eventType := core.EventModify

	if n.IsNew() {
		n.ID = e.assignID()
		notes = append(notes, n)
		eventType = core.EventCreate
	} else if idx, ok := e.cache.indexOf(n.ID); ok {
		n.Favorite = notes[idx].Favorite
		notes[idx] = n
	} else {
		notes = append(notes, n)
		eventType = core.EventCreate
	}

	if err := e.persistCategory(ctx, n.Category); err != nil {
		return core.Note{}, err
	}
	if err := e.persistNotes(ctx, notes); err != nil {
		return core.Note{}, err
	}

	if e.logger != nil {
		e.logger.Debug("note stored", "id", n.ID, "category", n.Category, "event", eventType)
	}
	e.broker.publish(core.Event{
		Type:      eventType,
		ID:        n.ID,
		Category:  n.Category,
		Timestamp: e.clock().Unix(),
	})
	return n, nil
}

// Delete removes the note with the given ID. Absent IDs are a no-op, not
// an error, and do not touch the backend.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	if err := e.lockMutations(ctx); err != nil {
		return err
	}
	defer e.unlockMutations()

	if err := e.loadLocked(ctx); err != nil {
		return err
	}

	idx, ok := e.cache.indexOf(id)
	if !ok {
		return nil
	}

	notes := e.cache.snapshot()
	category := notes[idx].Category
	notes = append(notes[:idx], notes[idx+1:]...)

	if err := e.persistNotes(ctx, notes); err != nil {
		return err
	}

	if e.logger != nil {
		e.logger.Debug("note deleted", "id", id)
	}
	e.broker.publish(core.Event{
		Type:      core.EventDelete,
		ID:        id,
		Category:  category,
		Timestamp: e.clock().Unix(),
	})
	return nil
}

// SetFavorite sets the favorite flag without requiring the caller to
// supply the full note, re-reading the current record so no other field
// is lost. Returns the updated note.
func (e *Engine) SetFavorite(ctx context.Context, id int64, favorite bool) (core.Note, error) {
	if err := e.lockMutations(ctx); err != nil {
		return core.Note{}, err
	}
	defer e.unlockMutations()

	if err := e.loadLocked(ctx); err != nil {
		return core.Note{}, err
	}

	idx, ok := e.cache.indexOf(id)
	if !ok {
		return core.Note{}, core.ErrNotFound
	}

	notes := e.cache.snapshot()
	notes[idx].Favorite = favorite
	n := notes[idx]

	if err := e.persistNotes(ctx, notes); err != nil {
		return core.Note{}, err
	}

	e.broker.publish(core.Event{
		Type:      core.EventModify,
		ID:        id,
		Category:  n.Category,
		Timestamp: e.clock().Unix(),
	})
	return n, nil
}

// Categories returns the known-category set, a superset of the category
// values in use. Stale entries are tolerated, never garbage-collected.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return e.cache.categories(), nil
}

// AddCategory registers a category name so it can exist with zero notes,
// e.g. freshly created by the user.
func (e *Engine) AddCategory(ctx context.Context, name string) error {
	if name == "" {
		return &core.ValidationError{Field: "category", Reason: "must not be empty"}
	}

	if err := e.lockMutations(ctx); err != nil {
		return err
	}
	defer e.unlockMutations()

	if err := e.loadLocked(ctx); err != nil {
		return err
	}
	return e.persistCategory(ctx, name)
}

// NotesByCategory returns the notes carrying the given category, in
// persisted order, using the category index.
func (e *Engine) NotesByCategory(ctx context.Context, category string) ([]core.Note, error) {
	if err := e.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return e.cache.byCategory(category), nil
}

// Invalidate drops the in-memory cache. The next access reloads from the
// backend. Navigation layers call this instead of re-fetching on focus;
// backend watchers call it when another process rewrote the store.
func (e *Engine) Invalidate() {
	e.cache.invalidate()
	if e.logger != nil {
		e.logger.Debug("cache invalidated")
	}
}

// Watch observes committed mutations. The pattern is a glob matched
// against the event's category ("*" for everything). The channel closes
// when ctx is cancelled.
func (e *Engine) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	return e.broker.subscribe(ctx, pattern)
}

// Close waits for any in-flight mutation to commit, then releases the
// broker and the backend. A navigation-away or teardown during a save
// therefore never aborts the write.
func (e *Engine) Close() error {
	e.writeMu <- struct{}{}
	defer func() { <-e.writeMu }()

	e.broker.close()
	return e.backend.Close()
}

// --- internals ---

func (e *Engine) lockMutations(ctx context.Context) error {
	select {
	case e.writeMu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) unlockMutations() {
	<-e.writeMu
}

// ensureLoaded populates the cache on first read access.
func (e *Engine) ensureLoaded(ctx context.Context) error {
	if e.cache.isLoaded() {
		return nil
	}
	if err := e.lockMutations(ctx); err != nil {
		return err
	}
	defer e.unlockMutations()
	return e.loadLocked(ctx)
}

// loadLocked loads notes and categories from the backend if the cache is
// stale. Caller holds the mutation queue.
func (e *Engine) loadLocked(ctx context.Context) error {
	if e.cache.isLoaded() {
		return nil
	}

	rawNotes, err := e.backend.Load(ctx, core.KeyNotes)
	if err != nil {
		return core.Unavailable(err)
	}
	notes, err := codec.DecodeNotes(rawNotes)
	if err != nil {
		return err
	}

	rawCats, err := e.backend.Load(ctx, core.KeyCategories)
	if err != nil {
		return core.Unavailable(err)
	}
	categories, err := codec.DecodeCategories(rawCats)
	if err != nil {
		return err
	}

	e.cache.replace(notes, categories)
	if e.logger != nil {
		e.logger.Debug("collection loaded", "notes", len(notes), "categories", len(categories))
	}
	return nil
}

// persistNotes writes the collection through the codec and commits the
// cache only on success, so a failed write leaves prior state
// authoritative.
func (e *Engine) persistNotes(ctx context.Context, notes []core.Note) error {
	data, err := codec.EncodeNotes(notes)
	if err != nil {
		return err
	}
	if err := e.backend.Store(ctx, core.KeyNotes, data); err != nil {
		return core.Unavailable(err)
	}
	e.cache.replaceNotes(notes)
	return nil
}

// persistCategory adds a name to the known set and writes the set back.
// Known names are a no-op. The set is persisted before any note
// referencing the name so it stays a superset of the categories in use.
func (e *Engine) persistCategory(ctx context.Context, name string) error {
	if name == "" || name == core.CategoryNone || e.cache.hasCategory(name) {
		return nil
	}

	categories := append(e.cache.categories(), name)
	data, err := codec.EncodeCategories(categories)
	if err != nil {
		return err
	}
	if err := e.backend.Store(ctx, core.KeyCategories, data); err != nil {
		return core.Unavailable(err)
	}
	e.cache.replaceCategories(categories)
	return nil
}

// assignID derives a fresh unique ID from the clock, in milliseconds like
// the records written by the mobile app. On collision (two creations in
// the same millisecond) it walks forward until free.
func (e *Engine) assignID() int64 {
	id := e.clock().UnixMilli()
	for {
		if _, taken := e.cache.indexOf(id); !taken {
			return id
		}
		id++
	}
}
