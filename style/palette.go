package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/marquee-cli/marquee/color"
)

var (
	Text    = lipgloss.Color("#e5e5e5")
	Subtext = lipgloss.Color("#b3b3b3")
	Overlay = lipgloss.Color("#6d6d6d")
	Surface = color.Card

	AccentColor  = color.Marquee
	RatingColor  = color.Gold
	MatchColor   = color.Match
	SuccessColor = color.Match
	WarningColor = color.Gold
	ErrorColor   = color.Ember
	FaintColor   = Overlay

	BorderColor       = Surface
	ActiveBorderColor = AccentColor
)
