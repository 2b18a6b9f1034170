package tui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorIndigo = lipgloss.Color("#6366F1")
	ColorViolet = lipgloss.Color("#A78BFA")
	ColorGreen  = lipgloss.Color("#22C55E")
	ColorRed    = lipgloss.Color("#EF4444")
	ColorYellow = lipgloss.Color("#EAB308")
	ColorGray   = lipgloss.Color("#6B7280")
	ColorDim    = lipgloss.Color("#374151")
	ColorWhite  = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorIndigo)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorViolet)

	FieldStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	FocusedFieldStyle = lipgloss.NewStyle().
				Foreground(ColorIndigo).
				Bold(true)

	OnlineStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	AwayStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ProgressFilledStyle = lipgloss.NewStyle().
				Foreground(ColorIndigo)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorDim)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	QuoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorViolet)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
