// Package cmd implements the marquee command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/log"
	"github.com/marquee-cli/marquee/query"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/tui"
	"github.com/marquee-cli/marquee/util"
	"github.com/marquee-cli/marquee/version"
	"github.com/marquee-cli/marquee/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("language", "", "Language of titles and overviews, e.g. en-US")
	lo.Must0(viper.BindPFlag(key.TMDBLanguage, rootCmd.PersistentFlags().Lookup("language")))

	addRouteFlags(rootCmd)

	lo.Must0(rootCmd.RegisterFlagCompletionFunc("search", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(tui.SearchAll), string(tui.SearchMovies), string(tui.SearchTV)}, cobra.ShellCompDirectiveNoFileComp
	}))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(cmd.OutOrStdout())
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd launches the interactive interface.
var rootCmd = &cobra.Command{
	Use:   constant.Marquee,
	Short: "Browse movies and TV shows from your terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.Marquee).Render("    - Browse movies and TV shows from your terminal"),
	Example: `  marquee
  marquee --tv
  marquee --movie 550
  marquee --search matrix --type movies`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		route, err := routeFromFlags(cmd)
		handleErr(err)

		queries, closeQueries := newQueries()
		defer closeQueries()

		handleErr(tui.Run(&tui.Options{
			Queries: queries,
			Route:   route,
		}))
	},
}

func addRouteFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("tv", false, "Open the TV shows page")
	cmd.Flags().Int("movie", 0, "Open the details page of a movie by its TMDB id")
	cmd.Flags().Int("series", 0, "Open the details page of a TV show by its TMDB id")
	cmd.Flags().StringP("search", "s", "", "Open the search page with this query")
	cmd.Flags().StringP("type", "t", "", "Result type of --search: movies, tv or all")
	cmd.MarkFlagsMutuallyExclusive("tv", "movie", "series", "search")
}

// routeFromFlags picks the first page from --tv, --movie, --series and --search.
func routeFromFlags(cmd *cobra.Command) (tui.Route, error) {
	flags := cmd.Flags()

	switch {
	case lo.Must(flags.GetBool("tv")):
		return tui.TV(), nil
	case flags.Changed("movie"), flags.Changed("series"):
		kind, name := catalog.Movies, "movie"
		if flags.Changed("series") {
			kind, name = catalog.Series, "series"
		}

		id := lo.Must(flags.GetInt(name))
		if id <= 0 {
			return tui.Route{}, fmt.Errorf("--%s: %w", name, catalog.ErrInvalidID)
		}
		return tui.Details(kind, id), nil
	case flags.Changed("search"):
		searchType := viper.GetString(key.SearchDefaultType)
		if flags.Changed("type") {
			searchType = lo.Must(flags.GetString("type"))
		}

		t, err := tui.ParseSearchType(searchType)
		if err != nil {
			return tui.Route{}, err
		}
		return tui.Search(lo.Must(flags.GetString("search")), t), nil
	case flags.Changed("type"):
		return tui.Route{}, errors.New("--type needs --search")
	}

	return tui.Home(), nil
}

// Execute runs the command matching os.Args.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiRed + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
