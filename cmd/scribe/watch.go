package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
	"github.com/scribedb/scribe/internal/platform"
	"github.com/scribedb/scribe/pkg/core"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the store for external changes",
	Long:  `Follow the backing store and report keys rewritten by another process. The in-memory cache is invalidated on every change, so subsequent reads see the new state.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fatal("Failed to load config", err)
		}

		backend, err := platform.NewBackend(cfg.Path,
			platform.WithAdapter(cfg.Adapter),
			platform.WithLogger(slog.Default()),
			platform.WithMustExist(true),
		)
		if err != nil {
			fatal("Failed to open backend", err)
		}

		watchable, ok := backend.(core.Watchable)
		if !ok {
			fatal("Adapter does not support watching", fmt.Errorf("adapter %q has no change notification", cfg.Adapter))
		}

		eng, err := scribe.New("", scribe.WithBackend(backend), scribe.WithLogger(slog.Default()))
		if err != nil {
			fatal("Failed to initialize scribe", err)
		}
		defer eng.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		keys, err := watchable.Watch(ctx)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Println("Watching for changes. Ctrl+C to stop.")
		for key := range keys {
			eng.Invalidate()
			fmt.Printf("changed: %s\n", key)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
