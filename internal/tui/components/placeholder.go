package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/snips/internal/tui/styles"
)

// PlaceholderScreen is a static "Coming Soon" screen
type PlaceholderScreen struct {
	title  string
	width  int
	height int
}

// NewPlaceholderScreen creates a placeholder titled title
func NewPlaceholderScreen(title string) PlaceholderScreen {
	return PlaceholderScreen{title: title}
}

// SetSize updates the screen dimensions
func (p *PlaceholderScreen) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Title returns the screen title
func (p PlaceholderScreen) Title() string {
	return p.title
}

// View renders the placeholder
func (p PlaceholderScreen) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render(p.title),
		"",
		styles.SubtitleStyle.Render("Coming Soon"),
	)
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, content)
}
