package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribedb/scribe"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scribe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scribe version %s\n", scribe.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
