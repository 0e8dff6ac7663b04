package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/query"
)

var (
	listJSON      bool
	listCategory  string
	listFavorites bool
	listSearch    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in the store",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := openEngine(true)
		if err != nil {
			fmt.Printf("Error initializing scribe: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close()

		notes, err := eng.List(context.Background())
		if err != nil {
			fmt.Printf("Error listing notes: %v\n", err)
			os.Exit(1)
		}

		filtered := scribe.Filter(notes, query.Params{
			Category:      listCategory,
			FavoritesOnly: listFavorites,
			Search:        listSearch,
		})

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, note := range filtered {
			marker := " "
			if note.Favorite {
				marker = "*"
			}
			category := ""
			if note.Category != core.CategoryNone {
				category = fmt.Sprintf(" [%s]", note.Category)
			}
			fmt.Printf("%s %d  %s%s  (%s)\n", marker, note.ID, note.Title, category, note.Date)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter notes by category")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Show only favorite notes")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Substring search over title and content")
}
