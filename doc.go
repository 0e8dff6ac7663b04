// Package scribe is the Composition Root for the Scribe note store.
//
// It connects the core note model (Domain Layer) with the storage
// adapters (Persistence Layer), keeping the engine agnostic of where
// the collection actually lives.
//
// Philosophy:
//
// Scribe is the durable core of a note-taking application: a single
// JSON-encoded collection with consistent read-modify-write semantics,
// a maintained category set, and filter/search queries that stay pure
// over in-memory snapshots. Storage is pluggable; the default adapter
// keeps each key as an atomically-replaced file on disk.
//
// Features:
//
//   - **Serialized mutations**: every write is a full read-modify-write
//     under a single mutation queue, so concurrent saves never lose data.
//   - **Atomic persistence**: the kvfile adapter writes via temp file +
//     rename; readers never observe a torn collection.
//   - **Category superset**: known category names are persisted before
//     any note that references them.
//   - **Draft coordination**: the draft package guards edits, exits and
//     attachment races on top of the engine.
//   - **Extensible**: alternative backends (SQLite, in-memory) plug in
//     via core.Backend.
//
// Usage:
//
//	// Initialize the engine with functional options
//	eng, err := scribe.New("./notes",
//		scribe.WithLogger(logger),
//	)
//
//	// Save a note
//	saved, err := eng.Put(ctx, core.NewNote("groceries"))
package scribe
