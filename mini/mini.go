// Package mini is a prompt-driven catalog browser for terminals where the full interface is unwanted.
package mini

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/marquee-cli/marquee/catalog"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/open"
	"github.com/marquee-cli/marquee/util"
)

var truncateAt = 80

type Options struct {
	Queries *cache.Queries
	Out     io.Writer
	// Prompter defaults to survey prompts.
	Prompter Prompter
	// OpenURL launches trailers. The system handler is used when nil.
	OpenURL func(url string) error
}

// frame is what going back restores.
type frame struct {
	state        state
	listingTitle string
	listing      *cache.Infinite[catalog.MediaItem]
	selected     catalog.MediaItem
}

type mini struct {
	state         state
	statesHistory util.Stack[frame]

	ctx         context.Context
	queries     *cache.Queries
	prompt      Prompter
	out         io.Writer
	openURL     func(string) error
	interactive bool

	listingTitle   string
	listing        *cache.Infinite[catalog.MediaItem]
	searchResource catalog.Resource
	selected       catalog.MediaItem
}

func newMini(options *Options) *mini {
	m := &mini{
		statesHistory: util.Stack[frame]{},
		ctx:           context.Background(),
		queries:       options.Queries,
		prompt:        options.Prompter,
		out:           options.Out,
		openURL:       options.OpenURL,
	}

	if m.prompt == nil {
		m.prompt = surveyPrompter{}
	}
	if m.out == nil {
		m.out = os.Stdout
		m.interactive = true
	}
	if m.openURL == nil {
		m.openURL = open.Start
	}
	return m
}

func (m *mini) previousState() {
	if m.statesHistory.Len() == 0 {
		m.setState(quitState)
		return
	}

	f := m.statesHistory.Pop()
	m.listingTitle, m.listing, m.selected = f.listingTitle, f.listing, f.selected
	m.setState(f.state)
}

func (m *mini) setState(s state) {
	m.state = s
}

// newState remembers the current frame; callers then replace what the new state shows.
func (m *mini) newState(s state) {
	m.statesHistory.Push(frame{
		state:        m.state,
		listingTitle: m.listingTitle,
		listing:      m.listing,
		selected:     m.selected,
	})
	m.setState(s)
}

func Run(options *Options) error {
	if options.Queries == nil {
		return errors.New("mini: no queries")
	}

	m := newMini(options)
	m.state = sectionSelectState

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	for m.state != quitState {
		if err := m.handleState(); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (m *mini) handleState() error {
	switch m.state {
	case sectionSelectState:
		return m.handleSectionSelectState()
	case searchState:
		return m.handleSearchState()
	case listState:
		return m.handleListState()
	case detailsState:
		return m.handleDetailsState()
	}
	return nil
}
