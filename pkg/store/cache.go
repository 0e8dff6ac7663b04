package store

import (
	"sync"

	"github.com/scribedb/scribe/pkg/core"
)

// cache is the committed in-memory view of the collection: the note list
// in persisted order, an ID index, a category index, and the
// known-category set. Readers see only fully committed states.
type cache struct {
	mu     sync.RWMutex
	loaded bool

	notes []core.Note
	byID  map[int64]int
	byCat map[string]map[int64]struct{}

	cats   []string
	catSet map[string]bool
}

func newCache() *cache {
	return &cache{}
}

func (c *cache) isLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *cache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.notes = nil
	c.byID = nil
	c.byCat = nil
	c.cats = nil
	c.catSet = nil
}

// replace commits a freshly loaded collection.
func (c *cache) replace(notes []core.Note, categories []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setNotes(notes)
	c.setCategories(categories)
	c.loaded = true
}

// replaceNotes commits a mutated note list.
func (c *cache) replaceNotes(notes []core.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setNotes(notes)
}

// replaceCategories commits a grown known-category set.
func (c *cache) replaceCategories(categories []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCategories(categories)
}

// setNotes rebuilds the ID and category indexes. Caller holds the lock.
func (c *cache) setNotes(notes []core.Note) {
	c.notes = notes
	c.byID = make(map[int64]int, len(notes))
	c.byCat = make(map[string]map[int64]struct{})
	for i, n := range notes {
		c.byID[n.ID] = i
		ids, ok := c.byCat[n.Category]
		if !ok {
			ids = make(map[int64]struct{})
			c.byCat[n.Category] = ids
		}
		ids[n.ID] = struct{}{}
	}
}

func (c *cache) setCategories(categories []string) {
	c.cats = categories
	c.catSet = make(map[string]bool, len(categories))
	for _, name := range categories {
		c.catSet[name] = true
	}
}

// snapshot returns a copy of the note list safe for the caller to mutate.
func (c *cache) snapshot() []core.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

func (c *cache) get(id int64) (core.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return core.Note{}, false
	}
	return c.notes[idx], true
}

func (c *cache) indexOf(id int64) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	return idx, ok
}

func (c *cache) categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.cats))
	copy(out, c.cats)
	return out
}

func (c *cache) hasCategory(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.catSet[name]
}

// byCategory returns the notes in a category in persisted order, using
// the index for membership.
func (c *cache) byCategory(category string) []core.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, ok := c.byCat[category]
	if !ok {
		return []core.Note{}
	}
	out := make([]core.Note, 0, len(ids))
	for _, n := range c.notes {
		if _, member := ids[n.ID]; member {
			out = append(out, n)
		}
	}
	return out
}

func (c *cache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}
