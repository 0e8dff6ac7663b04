package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var addCategory string

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List known categories",
	Long:  `List the known-category set. The set is a superset of the categories in use: a name stays listed even after its last note is deleted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := openEngine(true)
		if err != nil {
			fmt.Printf("Error initializing scribe: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close()

		ctx := context.Background()

		if addCategory != "" {
			if err := eng.AddCategory(ctx, addCategory); err != nil {
				fmt.Printf("Error adding category: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Category added: %s\n", addCategory)
			return
		}

		cats, err := eng.Categories(ctx)
		if err != nil {
			fmt.Printf("Error listing categories: %v\n", err)
			os.Exit(1)
		}
		for _, name := range cats {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().StringVar(&addCategory, "add", "", "Register a new category name")
}
