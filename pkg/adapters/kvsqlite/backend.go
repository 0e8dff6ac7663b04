// Package kvsqlite implements core.Backend on a SQLite database using
// pure-Go SQLite (modernc.org/sqlite). One row per key; the whole
// collection payload is the row value, so a Store is a single-statement
// transaction and the no-partial-write guarantee comes from SQLite.
package kvsqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/scribedb/scribe/pkg/core"
)

// Backend implements core.Backend using SQLite.
type Backend struct {
	mu sync.RWMutex
	db *sql.DB
}

// New opens (or creates) a SQLite-backed store.
// Use ":memory:" for an in-memory database.
func New(path string) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at TEXT NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Backend{db: db}, nil
}

// Load retrieves the bytes under key, or (nil, nil) if absent.
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var value []byte
	err := b.db.QueryRowContext(ctx,
		"SELECT value FROM kv_store WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return value, nil
}

// Store upserts the bytes under key.
func (b *Backend) Store(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Absent keys are not an error.
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Count returns the number of stored keys.
func (b *Backend) Count(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var n int
	if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Close shuts down the database.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Close()
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "backend.kvsqlite"
}

var _ core.Backend = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
