package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribedb/scribe/pkg/adapters/memory"
	"github.com/scribedb/scribe/pkg/core"
)

func TestNew_DefaultAdapter(t *testing.T) {
	dir := t.TempDir()

	eng, err := New(dir)
	require.NoError(t, err)
	defer eng.Close()

	note := core.NewNote("hello")
	saved, err := eng.Put(t.Context(), note)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	// The kvfile adapter should have materialized the notes key on disk.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestNew_InjectedBackend(t *testing.T) {
	backend := memory.New()

	eng, err := New("ignored", WithBackend(backend))
	require.NoError(t, err)
	defer eng.Close()

	_, err = eng.Put(t.Context(), core.NewNote("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Len())
}

func TestNew_SQLiteAdapter(t *testing.T) {
	eng, err := New(":memory:", WithAdapter("sqlite"))
	require.NoError(t, err)
	defer eng.Close()

	saved, err := eng.Put(t.Context(), core.NewNote("a"))
	require.NoError(t, err)

	got, err := eng.Get(t.Context(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Title)
}

func TestNew_UnknownAdapter(t *testing.T) {
	_, err := New(".", WithAdapter("carrier-pigeon"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown adapter")
}

func TestNew_ClockOption(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)

	eng, err := New("", WithAdapter("memory"), WithClock(func() time.Time { return frozen }))
	require.NoError(t, err)
	defer eng.Close()

	saved, err := eng.Put(t.Context(), core.NewNote("a"))
	require.NoError(t, err)
	assert.Equal(t, frozen.UnixMilli(), saved.ID)
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "scribe.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "kvfile", cfg.Adapter)
	assert.Equal(t, ".", cfg.Path)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.yaml")
	data := "path: /tmp/notes\nadapter: sqlite\nsearch_debounce: 150ms\nevent_buffer: 16\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/notes", cfg.Path)
	assert.Equal(t, "sqlite", cfg.Adapter)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 16, cfg.EventBuffer)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("path: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
