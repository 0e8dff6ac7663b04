package query

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scribedb/scribe/pkg/core"
)

func sampleNotes() []core.Note {
	return []core.Note{
		{ID: 1, Title: "Buy milk", Content: "2 liters", Category: "Home", Favorite: false},
		{ID: 2, Title: "Call Bob", Content: "about the offsite", Category: "Work", Favorite: true},
		{ID: 3, Title: "Dentist", Content: "friday 9am", Category: "Home", Favorite: true},
	}
}

func titles(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestFilter_FavoritesShortCircuitsCategory(t *testing.T) {
	// Favorites and category are mutually exclusive facets: a category
	// filter set alongside FavoritesOnly is ignored entirely.
	got := Filter(sampleNotes(), Params{FavoritesOnly: true, Category: "Home"})
	assert.Equal(t, []string{"Call Bob", "Dentist"}, titles(got))
}

func TestFilter_Category(t *testing.T) {
	got := Filter(sampleNotes(), Params{Category: "Home"})
	assert.Equal(t, []string{"Buy milk", "Dentist"}, titles(got))

	t.Run("all sentinel disables the filter", func(t *testing.T) {
		got := Filter(sampleNotes(), Params{Category: core.CategoryAll})
		assert.Len(t, got, 3)
	})
}

func TestFilter_SearchCaseInsensitive(t *testing.T) {
	got := Filter(sampleNotes(), Params{Search: "BOB"})
	assert.Equal(t, []string{"Call Bob"}, titles(got))

	t.Run("matches content too", func(t *testing.T) {
		got := Filter(sampleNotes(), Params{Search: "LITERS"})
		assert.Equal(t, []string{"Buy milk"}, titles(got))
	})
}

func TestFilter_ComposesSearchAfterFacet(t *testing.T) {
	got := Filter(sampleNotes(), Params{Category: "Home", Search: "friday"})
	assert.Equal(t, []string{"Dentist"}, titles(got))
}

func TestFilter_EmptyInput(t *testing.T) {
	got := Filter(nil, Params{Search: "anything"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_PreservesOrderAndInput(t *testing.T) {
	notes := sampleNotes()
	got := Filter(notes, Params{})
	assert.Equal(t, titles(notes), titles(got))
	assert.Equal(t, "Buy milk", notes[0].Title)
}

func TestDebouncer_CollapsesToLatestParams(t *testing.T) {
	var mu sync.Mutex
	var evaluated []Params

	d := NewDebouncer(30*time.Millisecond, func(p Params) {
		mu.Lock()
		evaluated = append(evaluated, p)
		mu.Unlock()
	})
	defer d.Stop()

	// A typing burst: b, bo, bob.
	d.Update(Params{Search: "b"})
	d.Update(Params{Search: "bo"})
	d.Update(Params{Search: "bob"})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(evaluated) == 1 && evaluated[0].Search == "bob"
	}, time.Second, 10*time.Millisecond)
}

func TestDebouncer_FlushEvaluatesImmediately(t *testing.T) {
	var mu sync.Mutex
	var got *Params

	d := NewDebouncer(time.Hour, func(p Params) {
		mu.Lock()
		got = &p
		mu.Unlock()
	})
	defer d.Stop()

	d.Update(Params{Search: "now"})
	d.Flush()

	mu.Lock()
	defer mu.Unlock()
	if assert.NotNil(t, got) {
		assert.Equal(t, "now", got.Search)
	}
}

func TestDebouncer_StopDiscardsPending(t *testing.T) {
	fired := false
	d := NewDebouncer(20*time.Millisecond, func(Params) { fired = true })

	d.Update(Params{Search: "never"})
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired)
}
