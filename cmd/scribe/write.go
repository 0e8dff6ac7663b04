package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
	"github.com/scribedb/scribe/pkg/core"
)

var (
	writeID       int64
	writeTitle    string
	writeContent  string
	writeCategory string
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Create or update a note",
	Long:  `Create a note, or update an existing one when --id is given. Saves go through the same exit-guarded draft flow the app uses, so an empty title is rejected.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := openEngine(false)
		if err != nil {
			fatal("Failed to initialize scribe", err)
		}
		defer eng.Close()

		coord := scribe.NewCoordinator(eng, slog.Default())
		ctx := context.Background()

		var d *scribe.Draft
		if writeID != 0 {
			d, err = coord.Open(ctx, writeID)
			if err != nil {
				fatal("Failed to open note", err)
			}
		} else {
			d = coord.NewDraft()
		}

		if cmd.Flags().Changed("title") || writeID == 0 {
			d.SetTitle(writeTitle)
		}
		if cmd.Flags().Changed("content") || writeID == 0 {
			d.SetContent(writeContent)
		}
		if cmd.Flags().Changed("category") {
			d.SetCategory(writeCategory)
		}

		saved, err := coord.Save(ctx, d)
		if err != nil {
			var verr *core.ValidationError
			if errors.As(err, &verr) {
				fatal("Invalid note", fmt.Errorf("%s %s", verr.Field, verr.Reason))
			}
			fatal("Failed to save note", err)
		}

		fmt.Printf("Note %d saved.\n", saved.ID)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().Int64Var(&writeID, "id", 0, "Note ID (omit to create)")
	writeCmd.Flags().StringVar(&writeTitle, "title", "", "Note title")
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Note content")
	writeCmd.Flags().StringVar(&writeCategory, "category", "", "Note category")
}
