package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note from the store",
	Long:  `Delete permanently removes a note. Deleting an absent ID is a no-op, matching the swipe-to-delete behavior where a repeated gesture must not fail.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Invalid note ID %q: %v\n", args[0], err)
			os.Exit(1)
		}

		eng, err := openEngine(true)
		if err != nil {
			fmt.Printf("Error initializing scribe: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close()

		coord := scribe.NewCoordinator(eng, slog.Default())
		removed, err := coord.Dismiss(context.Background(), id)
		if err != nil {
			fmt.Printf("Error deleting note: %v\n", err)
			os.Exit(1)
		}

		if removed {
			fmt.Printf("Note deleted: %d\n", id)
		} else {
			fmt.Printf("Note %d was already gone.\n", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
