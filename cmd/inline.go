// Package cmd implements the marquee command line.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/filesystem"
	"github.com/marquee-cli/marquee/inline"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/query"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	addInlineFlags(inlineCmd)

	inlineCmd.MarkFlagsMutuallyExclusive("resource", "details")
	inlineCmd.MarkFlagsOneRequired("resource", "details")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("resource", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(catalog.Resources(), func(r catalog.Resource, _ int) string {
			return string(r)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

func addInlineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("resource", "r", "", "The listing to fetch, e.g. popular-movies or search-tv")
	cmd.Flags().IntP("pages", "p", 1, "How many pages of the listing to fetch")
	cmd.Flags().IntP("genre", "g", 0, "Genre id for discover-movies and discover-tv")
	cmd.Flags().Int("id", 0, "Movie or series id for similar-movies and similar-tv")
	cmd.Flags().StringP("query", "q", "", "Search query for search-movies and search-tv")
	cmd.Flags().StringP("details", "d", "", "Print one title instead of a listing, e.g. movie:550 or tv:1399")
	cmd.Flags().BoolP("videos", "V", false, "Include the trailer URL of every title")
	cmd.Flags().BoolP("cast", "c", false, "Include cast portraits with --details")
	cmd.Flags().StringP("output", "o", "", "Write the JSON to a file instead of stdout")
}

// inlineCmd runs a single catalog request and prints the result for scripts.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Print catalog listings and details as JSON",
	Long: `Fetch a listing or a single title without any interface and print it as JSON.
Requests go through the same cache and retry policy as the interactive modes.`,
	Example: `  marquee inline --resource trending-movies --pages 2
  marquee inline --resource search-tv --query office --videos
  marquee inline --details movie:550 --cast`,
	Run: func(cmd *cobra.Command, args []string) {
		options, err := inlineOptions(cmd)
		handleErr(err)

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer = os.Stdout
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		queries, closeQueries := newQueries()
		defer closeQueries()

		options.Out = writer
		options.Queries = queries
		options.ImageBaseURL = viper.GetString(key.TMDBImageBaseURL)

		handleErr(inline.Run(context.Background(), options))
	},
}

// inlineOptions reads the flags of the inline command. Invalid values are
// rejected before any request is made.
func inlineOptions(cmd *cobra.Command) (*inline.Options, error) {
	flags := cmd.Flags()
	options := &inline.Options{
		Resource: mo.None[catalog.Resource](),
		Details:  mo.None[inline.Target](),
		Filters: catalog.Filters{
			ID:    lo.Must(flags.GetInt("id")),
			Query: lo.Must(flags.GetString("query")),
			Genre: lo.Must(flags.GetInt("genre")),
		},
		Pages:  lo.Must(flags.GetInt("pages")),
		Videos: lo.Must(flags.GetBool("videos")),
		Cast:   lo.Must(flags.GetBool("cast")),
	}

	if options.Pages < 1 {
		return nil, catalog.ErrInvalidPage
	}

	if name := lo.Must(flags.GetString("resource")); name != "" {
		resource, err := catalog.ParseResource(name)
		if err != nil {
			return nil, err
		}
		options.Resource = mo.Some(resource)
	}

	if s := lo.Must(flags.GetString("details")); s != "" {
		target, err := inline.ParseTarget(s)
		if err != nil {
			return nil, err
		}
		options.Details = mo.Some(target)
	}

	if options.Cast && options.Details.IsAbsent() {
		return nil, errors.New("--cast needs --details")
	}

	return options, nil
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd prints the JSON schema of the inline output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the inline output",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(inline.Schema()))
	},
}
