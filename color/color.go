// Package color holds the terminal palette.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value (ANSI index or hex) as a lipgloss.Color.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, used by the CLI output where terminal themes should win.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("8")
)

// Brand colors for the TUI.
var (
	Marquee = New("#e50914")
	Ember   = New("#b20710")
	Gold    = New("#f5c518")
	Match   = New("#46d369")
	Gray    = New("#808080")
	Night   = New("#141414")
	Card    = New("#2f2f2f")
)
