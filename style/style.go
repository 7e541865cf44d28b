// Package style composes lipgloss styles into small render functions.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with the given foreground and background.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a render function applying the foreground color.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Bg returns a render function applying the background color.
func Bg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored("", c).Render(s) }
}

var (
	Faint     = func(s string) string { return New().Faint(true).Render(s) }
	Bold      = func(s string) string { return New().Bold(true).Render(s) }
	Italic    = func(s string) string { return New().Italic(true).Render(s) }
	Underline = func(s string) string { return New().Underline(true).Render(s) }
)

// Title renders a section banner.
var Title = func(s string) string {
	return Colored(color.White, AccentColor).Bold(true).Padding(0, 1).Render(s)
}

// ErrorTitle renders a banner for failed sections and pages.
var ErrorTitle = func(s string) string {
	return Colored(color.White, ErrorColor).Bold(true).Padding(0, 1).Render(s)
}

// Tag renders a padded colored block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// Card is the frame of a carousel card; Selected is its focused variant.
var (
	Card = New().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	SelectedCard = Card.BorderForeground(ActiveBorderColor)
)

// Rating renders a vote average in gold.
var Rating = Fg(RatingColor)

// Match renders a match percentage in green.
var Match = Fg(MatchColor)
