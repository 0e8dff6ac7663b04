// Package query filters the note collection by category, favorite flag,
// and free-text search, and schedules debounced re-evaluation as the user
// types. Filtering is pure: it never fails and never touches the store.
package query

import (
	"strings"

	"github.com/scribedb/scribe/pkg/core"
)

// Params describes one query. The zero value matches everything.
type Params struct {
	// Category keeps only matching notes. Empty or core.CategoryAll
	// means no category filter.
	Category string

	// FavoritesOnly keeps only favorited notes. Favorites and category
	// are mutually exclusive facets in the UI, so this short-circuits
	// the category filter entirely rather than composing with it.
	FavoritesOnly bool

	// Search keeps notes whose title or content contains the text,
	// case-insensitively. Empty means no search filter.
	Search string
}

// Filter applies p to notes, preserving input order. The input slice is
// never mutated.
func Filter(notes []core.Note, p Params) []core.Note {
	result := make([]core.Note, 0, len(notes))

	for _, n := range notes {
		if p.FavoritesOnly {
			if !n.Favorite {
				continue
			}
		} else if p.Category != "" && p.Category != core.CategoryAll {
			if n.Category != p.Category {
				continue
			}
		}
		result = append(result, n)
	}

	if p.Search == "" {
		return result
	}

	needle := strings.ToLower(p.Search)
	matched := result[:0]
	for _, n := range result {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			matched = append(matched, n)
		}
	}
	return matched
}
