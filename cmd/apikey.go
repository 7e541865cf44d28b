// Package cmd implements the marquee command line.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/marquee-cli/marquee/auth"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/config"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(keyCmd)
}

// keyCmd groups the commands that manage the TMDB API key.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the TMDB API key stored in the system keyring",
}

func init() {
	keyCmd.AddCommand(keySetCmd)
}

// keySetCmd stores the API key in the system keyring.
var keySetCmd = &cobra.Command{
	Use:   "set [api key]",
	Short: "Store the TMDB API key in the system keyring",
	Long: `Store the TMDB API key in the system keyring.
You are prompted for the key when it is not given as an argument.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string
		if len(args) == 1 {
			apiKey = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{
				Message: "TMDB API key",
			}, &apiKey, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetAPIKey(apiKey))
		fmt.Printf("%s API key saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	keyCmd.AddCommand(keyShowCmd)
	keyShowCmd.Flags().BoolP("reveal", "r", false, "Print the whole key instead of a masked one")
}

// keyShowCmd prints the stored API key, masked unless asked otherwise.
var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the API key marquee will use and where it comes from",
	Run: func(cmd *cobra.Command, args []string) {
		apiKey, err := config.APIKey()
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("reveal")) {
			apiKey = maskKey(apiKey)
		}
		cmd.Println(apiKey)
	},
}

// maskKey keeps the last four characters.
func maskKey(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func init() {
	keyCmd.AddCommand(keyDeleteCmd)
}

// keyDeleteCmd removes the API key from the system keyring.
var keyDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the API key from the system keyring",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		err := auth.DeleteAPIKey()
		if errors.Is(err, auth.ErrNoAPIKey) {
			err = nil
		}
		handleErr(err)
		fmt.Printf("%s API key removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
