package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe/pkg/core"
)

var favoriteOff bool

var favoriteCmd = &cobra.Command{
	Use:   "favorite [id]",
	Short: "Mark a note as favorite",
	Long:  `Set or clear the favorite flag on a note. The flag only ever changes through this operation, so a concurrent content save cannot undo it.`,
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

		note, err := eng.SetFavorite(context.Background(), id, !favoriteOff)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Note %d not found\n", id)
				os.Exit(1)
			}
			fmt.Printf("Error updating note: %v\n", err)
			os.Exit(1)
		}

		if note.Favorite {
			fmt.Printf("Note %d marked as favorite.\n", id)
		} else {
			fmt.Printf("Note %d unmarked.\n", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.Flags().BoolVar(&favoriteOff, "off", false, "Clear the flag instead of setting it")
}
