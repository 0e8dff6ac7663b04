// Package kvfile implements core.Backend as one file per key inside a
// store directory. Writes are atomic (temp file + rename), so a crash
// mid-write leaves the previous payload authoritative. The backend can
// optionally watch its directory and report keys rewritten by another
// process.
package kvfile

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/scribedb/scribe/pkg/core"
)

const fileExt = ".json"

// Config holds the configuration for the file backend.
type Config struct {
	Dir       string
	MustExist bool
	Logger    *slog.Logger
	// ErrorHandler receives watcher runtime failures (e.g. permission
	// denied) which are otherwise only logged.
	ErrorHandler func(error)
}

// Backend implements core.Backend on a directory of key files.
type Backend struct {
	Dir    string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// New creates a file backend rooted at config.Dir, creating the
// directory unless MustExist is set.
func New(config Config) (*Backend, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("store directory is required")
	}

	if config.MustExist {
		info, err := os.Stat(config.Dir)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("store directory does not exist: %s", config.Dir)
		}
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("store path is not a directory: %s", config.Dir)
		}
	} else {
		if err := os.MkdirAll(config.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	return &Backend{Dir: config.Dir, config: config}, nil
}

// Load reads the file holding key, or (nil, nil) if it was never written.
func (b *Backend) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.pathFor(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Store atomically replaces the file holding key.
func (b *Backend) Store(_ context.Context, key string, data []byte) error {
	if b.config.Logger != nil {
		b.config.Logger.Debug("writing key to disk", "key", key, "bytes", len(data))
	}
	return b.writeAtomic(key, data)
}

// Delete removes the file holding key. Absent keys are not an error.
func (b *Backend) Delete(_ context.Context, key string) error {
	err := os.Remove(b.pathFor(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close releases backend resources. Watchers stop with their context.
func (b *Backend) Close() error {
	return nil
}

// pathFor maps a namespaced key to its file. PathEscape keeps the
// mapping invertible for the watcher.
func (b *Backend) pathFor(key string) string {
	return filepath.Join(b.Dir, url.PathEscape(key)+fileExt)
}

// keyFor maps a watched filename back to its key. Returns false for
// foreign files (temp files, editor droppings).
func keyFor(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, tempFilePrefix) || !strings.HasSuffix(base, fileExt) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(base, fileExt))
	if err != nil {
		return "", false
	}
	return key, true
}

func (b *Backend) setWatcherActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watcherActive = active
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Dir           string `json:"dir"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BackendState{
		Dir:           b.Dir,
		WatcherActive: b.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "backend.kvfile"
}

var _ core.Backend = (*Backend)(nil)
var _ core.Watchable = (*Backend)(nil)
var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
