// Package tui is the interactive catalog browser: home, TV, details and search pages.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/constant"
	"github.com/marquee-cli/marquee/internal/cache"
	"github.com/marquee-cli/marquee/internal/ui"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/open"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/util"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// updateMsg tells that an entry watched by mounted page gen changed.
type updateMsg struct {
	gen int
	key cache.Key
}

type statefulBubble struct {
	state         state
	route         Route
	statesHistory util.Stack[Route]

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	helpC     help.Model
	viewportC viewport.Model

	queries *cache.Queries
	ctx     context.Context

	// updates carries cache notifications of the mounted page into the program.
	updates chan updateMsg
	gen     int
	subs    []*cache.Subscription

	hero     *hero
	details  *detailsPage
	search   *searchPage
	sections []*section
	// focus is the focused section; -1 is the search field.
	focus int

	added    bool
	addedGen int

	searchSuggestion mo.Option[string]
	lastError        error

	width, height int
	notifier      *ui.Notifier
	openURL       func(string) error
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(Route{state: errorState})
}

// setState mounts r without touching the history.
func (b *statefulBubble) setState(r Route) {
	b.state = r.state
	b.route = r
	b.keymap.setState(r.state)
	b.mount()
}

// newState mounts r and remembers the current page for going back.
func (b *statefulBubble) newState(r Route) {
	if b.route == r && b.gen > 0 {
		return
	}

	if b.gen > 0 && b.state != errorState {
		b.statesHistory.Push(b.route)
	}

	b.setState(r)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	for _, s := range b.sections {
		s.carousel.SetWidth(b.width)
	}

	b.helpC.Width = b.width
	b.inputC.Width = b.width - lipgloss.Width(b.inputC.Prompt) - 1
	b.viewportC.Width = b.width
	b.viewportC.Height = max(1, b.height-2)
	if b.state == detailsState {
		b.refreshViewport()
	}
}

func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		statesHistory: util.Stack[Route]{},
		keymap:        newStatefulKeymap(),
		queries:       options.Queries,
		ctx:           context.Background(),
		updates:       make(chan updateMsg, 64),
		notifier:      &ui.Notifier{},
		openURL:       open.Start,
		width:         ui.DefaultCardWidth * 4,
		height:        24,
	}

	if options.OpenURL != nil {
		bubble.openURL = options.OpenURL
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search movies and TV shows (v%s)", constant.Version)
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPrompt)

	bubble.viewportC = viewport.New(bubble.width, bubble.height)
	bubble.viewportC.KeyMap = bubble.keymap.forViewport()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
