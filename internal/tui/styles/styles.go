package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Coral     = lipgloss.Color("#FF6B6B")
	Black     = lipgloss.Color("#000000")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Red       = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Coral)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Coral).
			Bold(true).
			Padding(0, 1)
)

// Tab bar styles
var (
	TabBarStyle = lipgloss.NewStyle().
			Background(Black).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(SlateDark)

	TabStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Align(lipgloss.Center)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Coral).
			Bold(true).
			Align(lipgloss.Center)
)

// Home card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateDark).
			Padding(0, 1)

	SelectedCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Coral).
				Padding(0, 1)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true).
				Padding(0, 1)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(Black).
			Background(Coral).
			Padding(0, 1)
)

// Feed styles
var (
	FeedTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	CaptionStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	MoreStyle = lipgloss.NewStyle().
			Foreground(Coral)

	ActionStyle = lipgloss.NewStyle().
			Foreground(White).
			Align(lipgloss.Center)

	PausedStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Coral).
			Bold(true).
			Padding(0, 1)
)

// Filter styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateDark).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Coral)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Progress bar styles
var (
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(Coral)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Match highlight styles for filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Coral).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(Coral).
					Background(SlateDark).
					Bold(true)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
