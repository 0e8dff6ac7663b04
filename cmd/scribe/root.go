package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
	"github.com/scribedb/scribe/internal/platform"
)

var (
	verbose    bool
	configFile string
	storePath  string
	adapter    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "A durable note store with consistent read-modify-write semantics",
	Long: `Scribe keeps a note collection as a single atomically-replaced record.
Every mutation is a serialized read-modify-write, so concurrent saves never
lose data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig merges the YAML config with command-line overrides.
func loadConfig() (platform.Config, error) {
	cfg, err := platform.LoadConfig(configFile)
	if err != nil {
		return cfg, err
	}
	if storePath != "" {
		cfg.Path = storePath
	}
	if adapter != "" {
		cfg.Adapter = adapter
	}
	return cfg, nil
}

// openEngine resolves the configuration and opens the store engine.
func openEngine(mustExist bool) (*scribe.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := []scribe.Option{
		scribe.WithAdapter(cfg.Adapter),
		scribe.WithLogger(slog.Default()),
		scribe.WithMustExist(mustExist),
	}
	if cfg.EventBuffer > 0 {
		opts = append(opts, scribe.WithEventBuffer(cfg.EventBuffer))
	}
	return scribe.New(cfg.Path, opts...)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", platform.ConfigFile, "Config file path")
	rootCmd.PersistentFlags().StringVar(&storePath, "path", "", "Store location (overrides config)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: kvfile, sqlite, memory (overrides config)")
}
