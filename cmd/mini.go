// Package cmd implements the marquee command line.
package cmd

import (
	"github.com/marquee-cli/marquee/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd browses the catalog with plain terminal prompts.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Browse with simple prompts instead of the full interface",
	Long:  `Pick a section or search, page through results and open details with plain terminal prompts.`,
	Run: func(cmd *cobra.Command, args []string) {
		queries, closeQueries := newQueries()
		defer closeQueries()

		handleErr(mini.Run(&mini.Options{Queries: queries}))
	},
}
