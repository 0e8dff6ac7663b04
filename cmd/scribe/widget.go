package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
	"github.com/scribedb/scribe/internal/platform"
	"github.com/scribedb/scribe/pkg/widget"
)

var widgetRefresh bool

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Show the widget snapshot",
	Long:  `Print the denormalized snapshot served to the home-screen widget. With --refresh, rebuild it from the current note list first.`,
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

		ctx := context.Background()

		if widgetRefresh {
			eng, err := scribe.New("", scribe.WithBackend(backend), scribe.WithLogger(slog.Default()))
			if err != nil {
				fatal("Failed to initialize scribe", err)
			}
			defer eng.Close()

			pub := widget.NewPublisher(eng, backend, slog.Default())
			if err := pub.Publish(ctx); err != nil {
				fatal("Failed to refresh widget snapshot", err)
			}
		} else {
			defer backend.Close()
		}

		entries := widget.Read(ctx, backend)
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "Widget snapshot is empty.")
			return
		}
		for _, e := range entries {
			fmt.Printf("%s  %s\n", e.Date, e.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(widgetCmd)
	widgetCmd.Flags().BoolVar(&widgetRefresh, "refresh", false, "Rebuild the snapshot before printing")
}
