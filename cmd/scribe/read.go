package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe/pkg/core"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Read a note",
	Long:  `Read a note by its ID. Outputs the content by default, or the full JSON record with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid note ID %q: %v\n", args[0], err)
			os.Exit(1)
		}

		eng, err := openEngine(true)
		if err != nil {
			fmt.Printf("Error initializing scribe: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close()

		note, err := eng.Get(context.Background(), id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "Note %d not found\n", id)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error reading note: %v\n", err)
			os.Exit(1)
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(note); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		// Default: Print Content
		fmt.Println(note.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
