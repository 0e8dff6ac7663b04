// Package widget maintains the denormalized snapshot a glanceable
// home-screen surface reads. The surface is a dumb consumer: it gets
// title/content/date triples under its own key, pushed whenever the
// collection changes, and it must render an empty state rather than fail
// when the snapshot is missing or malformed.
package widget

import (
	"context"
	"encoding/json"

	"github.com/scribedb/scribe/pkg/core"
)

// Entry is one glanceable row.
type Entry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// Snapshot projects the collection down to what the surface renders,
// preserving order.
func Snapshot(notes []core.Note) []Entry {
	entries := make([]Entry, len(notes))
	for i, n := range notes {
		entries[i] = Entry{Title: n.Title, Content: n.Content, Date: n.Date}
	}
	return entries
}

// EncodeSnapshot renders entries for the widget key.
func EncodeSnapshot(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// DecodeSnapshot parses a stored snapshot. Missing or malformed bytes
// yield an empty snapshot, never an error: the surface always renders.
func DecodeSnapshot(data []byte) []Entry {
	if len(data) == 0 {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return []Entry{}
	}
	return entries
}

// Read loads the snapshot from the backend, tolerating every failure
// mode with an empty snapshot.
func Read(ctx context.Context, backend core.Backend) []Entry {
	data, err := backend.Load(ctx, core.KeyWidget)
	if err != nil {
		return []Entry{}
	}
	return DecodeSnapshot(data)
}
