package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: leafy greens with a gold accent for coins
var (
	Primary = lipgloss.Color("#10B981") // Emerald
	Accent  = lipgloss.Color("#FACC15") // Gold
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Coins = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)
)

// Badges
var (
	Rank = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// States
var (
	SuccessText = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
