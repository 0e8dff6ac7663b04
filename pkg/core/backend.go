package core

import "context"

// Storage keys. A single namespaced key holds the whole note collection;
// companion keys hold the known-category set and the widget snapshot.
const (
	KeyNotes      = "scribe:notes"
	KeyCategories = "scribe:categories"
	KeyWidget     = "scribe:widget"
)

// Backend is the flat key-value surface the store engine persists through.
// Adhering to this interface keeps the engine independent of the physical
// medium (files, SQLite, memory). Only the engine mutates the backend;
// every other component goes through the engine's operations.
type Backend interface {
	// Load returns the bytes stored under key, or (nil, nil) when the key
	// has never been written. I/O failures are returned as-is and wrapped
	// by the engine.
	Load(ctx context.Context, key string) ([]byte, error)

	// Store atomically replaces the bytes under key. Either the whole
	// payload lands or the previous bytes remain authoritative.
	Store(ctx context.Context, key string, data []byte) error

	// Delete removes a key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Watchable is implemented by backends that can report external changes
// to their keys (e.g. another process rewriting the backing file).
type Watchable interface {
	// Watch emits the keys that changed until ctx is cancelled.
	Watch(ctx context.Context) (<-chan string, error)
}
