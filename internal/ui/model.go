// Package ui holds reusable TUI components: the carousel and the notifier.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marquee-cli/marquee/style"
)

// NotifyMsg asks the notifier to show Text for a while.
type NotifyMsg struct {
	Text string
	For  time.Duration
}

type clearNotificationMsg struct {
	id int
}

// Notifier shows one transient message at the end of the view.
type Notifier struct {
	text string
	id   int
}

// Notify returns a command that shows text for d.
func Notify(text string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Text: text, For: d}
	}
}

func (n *Notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotifyMsg:
		n.id++
		n.text = msg.Text
		id := n.id
		d := msg.For
		if d <= 0 {
			d = 3 * time.Second
		}
		return tea.Tick(d, func(time.Time) tea.Msg {
			return clearNotificationMsg{id: id}
		})
	case clearNotificationMsg:
		// A newer message restarts the timer.
		if msg.id == n.id {
			n.text = ""
		}
	}
	return nil
}

// Text is the message on display, if any.
func (n *Notifier) Text() string {
	return n.text
}

// View appends the message to the last line of content.
func (n *Notifier) View(content string) string {
	if n.text == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.text)
	return strings.Join(lines, "\n")
}
