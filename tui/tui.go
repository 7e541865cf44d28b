package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/log"
	"github.com/spf13/viper"
)

// Options configures Run.
type Options struct {
	Queries *cache.Queries
	// Route is the first page shown.
	Route Route
	// OpenURL launches trailers. The system handler is used when nil.
	OpenURL func(url string) error
}

// Run shows the browser until the user quits.
func Run(options *Options) error {
	if options.Queries == nil {
		return errors.New("tui: no queries")
	}

	bubble := newBubble(options)
	bubble.newState(options.Route)
	defer bubble.unmount()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}

func defaultSearchType() SearchType {
	t, err := ParseSearchType(viper.GetString(key.SearchDefaultType))
	if err != nil {
		log.Warn(err)
		return SearchAll
	}
	return t
}
