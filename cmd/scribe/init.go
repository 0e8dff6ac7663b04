package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
	"github.com/scribedb/scribe/internal/platform"
	"github.com/scribedb/scribe/pkg/core"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a scribe store",
	Long: `Initialize a new Scribe store at the configured path, creating the location
if needed. With --force, a store whose collection fails to decode is reset
to empty; without it, corruption is reported and the data left untouched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal("Failed to load config", err)
		}

		backend, err := platform.NewBackend(cfg.Path,
			platform.WithAdapter(cfg.Adapter),
			platform.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize store", err)
		}

		ctx := context.Background()

		eng, err := scribe.New("", scribe.WithBackend(backend), scribe.WithLogger(slog.Default()))
		if err != nil {
			fatal("Failed to initialize store", err)
		}
		defer eng.Close()

		if _, err := eng.List(ctx); err != nil {
			if !errors.Is(err, core.ErrCorrupt) {
				fatal("Failed to read store", err)
			}
			if !initForce {
				fmt.Fprintf(os.Stderr, "Store at %s is corrupt: %v\n", cfg.Path, err)
				fmt.Fprintln(os.Stderr, "Re-run with --force to reset it to an empty collection.")
				os.Exit(1)
			}

			slog.Warn("resetting corrupt store", "path", cfg.Path, "error", err)
			if err := backend.Delete(ctx, core.KeyNotes); err != nil {
				fatal("Failed to reset notes", err)
			}
			if err := backend.Delete(ctx, core.KeyCategories); err != nil {
				fatal("Failed to reset categories", err)
			}
			eng.Invalidate()
			if _, err := eng.List(ctx); err != nil {
				fatal("Store still unreadable after reset", err)
			}
			fmt.Println("Reset corrupt Scribe store in", cfg.Path)
			return
		}

		fmt.Println("Initialized empty Scribe store in", cfg.Path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reset a corrupt collection to empty")
}
