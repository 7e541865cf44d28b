package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/query"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case updateMsg:
		// Late notifications of an unmounted page are dropped.
		if msg.gen == b.gen {
			b.sync()
		}
		return b, tea.Batch(cmd, b.waitForUpdate())
	case addedResetMsg:
		if msg.gen == b.addedGen {
			b.added = false
			if b.state == detailsState {
				b.refreshViewport()
			}
		}
		return b, cmd
	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, spinnerCmd)
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back) && !b.keymap.inputFocused:
			b.previousState()
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.showHelp) && !b.keymap.inputFocused:
			b.helpC.ShowAll = !b.helpC.ShowAll
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case homeState, tvState:
		stateCmd = b.updateListing(msg)
	case detailsState:
		stateCmd = b.updateDetails(msg)
	case searchState:
		stateCmd = b.updateSearch(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

// updateBrowse handles the keys shared by pages made of carousels.
func (b *statefulBubble) updateBrowse(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case bubblesKey.Matches(msg, b.keymap.quit):
		return tea.Quit, true
	case bubblesKey.Matches(msg, b.keymap.left):
		if s, ok := b.focused(); ok {
			s.carousel.Left()
		}
		return nil, true
	case bubblesKey.Matches(msg, b.keymap.right):
		if s, ok := b.focused(); ok {
			return s.carousel.Right(), true
		}
		return nil, true
	case bubblesKey.Matches(msg, b.keymap.confirm):
		return b.activate(), true
	case bubblesKey.Matches(msg, b.keymap.refresh):
		return b.refresh(), true
	case bubblesKey.Matches(msg, b.keymap.search):
		b.newState(Search("", defaultSearchType()))
		return nil, true
	case bubblesKey.Matches(msg, b.keymap.home):
		b.newState(Home())
		return nil, true
	case bubblesKey.Matches(msg, b.keymap.tv):
		b.newState(TV())
		return nil, true
	}
	return nil, false
}

func (b *statefulBubble) updateListing(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if cmd, handled := b.updateBrowse(keyMsg); handled {
		return cmd
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.up):
		b.focusSection(b.focus - 1)
	case bubblesKey.Matches(keyMsg, b.keymap.down):
		b.focusSection(b.focus + 1)
	case bubblesKey.Matches(keyMsg, b.keymap.trailer):
		return b.playTrailer()
	case bubblesKey.Matches(keyMsg, b.keymap.addToList):
		return b.toggleAdded()
	}
	return nil
}

func (b *statefulBubble) updateDetails(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if cmd, handled := b.updateBrowse(keyMsg); handled {
		if b.state == detailsState {
			b.refreshViewport()
		}
		return cmd
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.trailer):
		return b.playTrailer()
	case bubblesKey.Matches(keyMsg, b.keymap.addToList):
		cmd := b.toggleAdded()
		b.refreshViewport()
		return cmd
	}

	var cmd tea.Cmd
	b.viewportC, cmd = b.viewportC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if isKey && !b.keymap.inputFocused {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.search):
			b.focusInput()
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.cycleSearchType):
			b.cycleSearchType()
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.up):
			if b.focus == 0 {
				b.focusInput()
			} else {
				b.focusSection(b.focus - 1)
			}
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.down):
			b.focusSection(b.focus + 1)
			return nil
		}

		cmd, _ := b.updateBrowse(keyMsg)
		return cmd
	}

	if isKey {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.confirm):
			if b.inputC.Value() != "" {
				b.submitSearch()
			}
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.CursorEnd()
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.cycleSearchType):
			b.cycleSearchType()
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.down):
			b.focusSection(0)
			return nil
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			b.previousState()
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(keyMsg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}
