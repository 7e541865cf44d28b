package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/marquee-cli/marquee/color"
	"github.com/marquee-cli/marquee/style"
)

type statefulKeymap struct {
	state state

	// inputFocused is set while the search field takes keystrokes.
	inputFocused bool

	quit, forceQuit,
	back,
	confirm,
	up, down, left, right,
	pageUp, pageDown,
	search, home, tv,
	trailer, addToList, refresh,
	acceptSearchSuggestion, cycleSearchType,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous row"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next row"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		pageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		pageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdown", "page down"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		home: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "movies"),
		),
		tv: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tv shows"),
		),
		trailer: key.NewBinding(
			key.WithKeys("o", "p"),
			key.WithHelp(style.Fg(color.Marquee)("o"), style.Fg(color.Marquee)("play trailer")),
		),
		addToList: key.NewBinding(
			key.WithKeys("+", "a"),
			key.WithHelp("+", "my list"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		cycleSearchType: key.NewBinding(
			key.WithKeys("shift+tab", "ctrl+t"),
			key.WithHelp("shift+tab", "result type"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case homeState, tvState:
		open := withDescription(k.confirm, "details")
		return h(open, k.trailer, k.search, k.showHelp),
			h(k.left, k.right, k.up, k.down, open, k.trailer, k.addToList, k.refresh, k.search, k.home, k.tv, k.back, k.quit)
	case detailsState:
		return h(k.trailer, k.addToList, k.back, k.showHelp),
			h(k.left, k.right, k.confirm, k.up, k.down, k.pageUp, k.pageDown, k.trailer, k.addToList, k.refresh, k.search, k.back, k.quit)
	case searchState:
		if k.inputFocused {
			search := withDescription(k.confirm, "search")
			return to2(h(search, k.acceptSearchSuggestion, k.cycleSearchType, k.down, k.back))
		}
		return to2(h(k.left, k.right, k.confirm, k.up, k.search, k.cycleSearchType, k.back))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forViewport() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     k.pageDown,
		PageUp:       k.pageUp,
		HalfPageUp:   key.NewBinding(key.WithDisabled()),
		HalfPageDown: key.NewBinding(key.WithDisabled()),
		Up:           k.up,
		Down:         k.down,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
