package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/snips/internal/tui/styles"
)

// TabBarHeight is the number of rows the tab bar occupies
const TabBarHeight = 2

// TabBar renders the bottom navigation
type TabBar struct {
	labels []string
	active int
	width  int
}

// NewTabBar creates a tab bar with the given labels
func NewTabBar(labels []string) TabBar {
	return TabBar{labels: labels}
}

// SetActive selects tab i
func (t *TabBar) SetActive(i int) {
	if i >= 0 && i < len(t.labels) {
		t.active = i
	}
}

// SetWidth updates the bar width
func (t *TabBar) SetWidth(width int) {
	t.width = width
}

// View renders the tab bar
func (t TabBar) View() string {
	if len(t.labels) == 0 {
		return ""
	}
	cell := max(t.width/len(t.labels), 1)
	tabs := make([]string, len(t.labels))
	for i, label := range t.labels {
		text := fmt.Sprintf("%d %s", i+1, label)
		if i == t.active {
			tabs[i] = styles.ActiveTabStyle.Width(cell).Render(text)
		} else {
			tabs[i] = styles.TabStyle.Width(cell).Render(text)
		}
	}
	return styles.TabBarStyle.Width(t.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}
