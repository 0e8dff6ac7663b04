// Package memory implements an in-process core.Backend for tests and
// ephemeral stores.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/scribedb/scribe/pkg/core"
)

// Backend implements core.Backend backed by process memory.
type Backend struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{data: make(map[string][]byte)}
}

// Load returns a copy of the bytes under key, or (nil, nil) if absent.
func (b *Backend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Store replaces the bytes under key.
func (b *Backend) Store(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	b.data[key] = stored
	return nil
}

// Delete removes a key. Absent keys are not an error.
func (b *Backend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.data, key)
	return nil
}

// Close marks the backend closed. Data stays readable so tests can
// inspect what the engine persisted last.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	return nil
}

// Len returns the number of stored keys.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	return struct {
		Keys   []string `json:"keys"`
		Closed bool     `json:"closed"`
	}{Keys: keys, Closed: b.closed}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "backend.memory"
}

var _ core.Backend = (*Backend)(nil)
var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
