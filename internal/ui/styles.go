package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	cardHex      = "#F7F4EE"
	maxCardWidth = 72
)

var cardRGB = mustHex(cardHex)

// mustHex parses a "#rrggbb" literal and panics on malformed input.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	cardBackground = lipgloss.Color(cardHex)

	cardStyle = lipgloss.NewStyle().
			Background(cardBackground).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder())

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(cardBackground).
			Foreground(lipgloss.Color("#888888"))

	quoteStyle = lipgloss.NewStyle().
			Bold(true).
			Background(cardBackground)

	authorStyle = lipgloss.NewStyle().
			Italic(true).
			Align(lipgloss.Right).
			Background(cardBackground)

	shareStyle = lipgloss.NewStyle().
			Underline(true).
			Background(cardBackground)

	statusStyle = lipgloss.NewStyle().
			Background(cardBackground).
			Foreground(lipgloss.Color("#555555"))

	noticeStyle = lipgloss.NewStyle().
			Background(cardBackground).
			Foreground(lipgloss.Color("#777777"))

	helpKeyStyle = lipgloss.NewStyle().
			Background(cardBackground).
			Foreground(lipgloss.Color("#666666"))

	helpDescStyle = lipgloss.NewStyle().
			Background(cardBackground).
			Foreground(lipgloss.Color("#999999"))
)
