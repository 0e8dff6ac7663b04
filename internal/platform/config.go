package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the default configuration file name, looked up in the
// working directory.
const ConfigFile = "scribe.yaml"

// Config mirrors the on-disk YAML configuration for the CLI.
type Config struct {
	// Path is the store location passed to the adapter.
	Path string `yaml:"path"`
	// Adapter selects the storage backend: kvfile, sqlite or memory.
	Adapter string `yaml:"adapter"`
	// SearchDebounce is the delay applied to incremental search input.
	SearchDebounce time.Duration `yaml:"search_debounce"`
	// EventBuffer is the per-subscriber event channel capacity.
	EventBuffer int `yaml:"event_buffer"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Path:    ".",
		Adapter: "kvfile",
	}
}

// LoadConfig reads the configuration at path. A missing file is not an
// error: defaults are returned. Values absent from the file keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Path == "" {
		cfg.Path = "."
	}
	if cfg.Adapter == "" {
		cfg.Adapter = "kvfile"
	}
	return cfg, nil
}
