package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/snips/internal/domain"
	"github.com/mmcdole/snips/internal/service"
	"github.com/mmcdole/snips/internal/tui/styles"
)

// Card widths as a share of the screen width
const (
	largeCardPercent   = 45
	defaultCardPercent = 30
	minCardWidth       = 14
	largeCardLines     = 5
	headerLines        = 2
	maxFilterResults   = 20
)

// HomeScreen shows the home page sections as horizontally scrolled rows
type HomeScreen struct {
	page    *domain.HomePage
	loading bool
	err     error
	spinner spinner.Model

	section int   // Selected section
	cursors []int // Selected item per section
	scrolls []int // First visible item per section

	search       *service.SearchService
	filtering    bool
	input        textinput.Model
	results      []service.SearchResult
	resultCursor int

	width  int
	height int
	keys   HomeKeyMap
}

// NewHomeScreen creates an empty home screen
func NewHomeScreen(search *service.SearchService) HomeScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.AccentStyle

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Filter titles"
	ti.PromptStyle = styles.AccentStyle
	ti.CharLimit = 64

	return HomeScreen{
		spinner: s,
		search:  search,
		input:   ti,
		keys:    DefaultHomeKeyMap(),
	}
}

// SetSize updates the screen dimensions
func (h *HomeScreen) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.input.Width = max(width-4, 10)
	for i := range h.scrolls {
		h.ensureVisible(i)
	}
}

// SetLoading shows the loading indicator
func (h *HomeScreen) SetLoading() tea.Cmd {
	h.loading = true
	h.err = nil
	return h.spinner.Tick
}

// SetPage installs a freshly fetched home page
func (h *HomeScreen) SetPage(page *domain.HomePage) {
	h.loading = false
	h.err = nil
	h.page = page
	h.section = 0
	n := 0
	if page != nil {
		n = len(page.Sections)
	}
	h.cursors = make([]int, n)
	h.scrolls = make([]int, n)
	h.closeFilter()
	if h.search != nil {
		h.search.Index(page)
	}
}

// SetError shows the generic failure message
func (h *HomeScreen) SetError(err error) {
	h.loading = false
	h.err = err
}

// IsLoading reports whether a fetch is pending
func (h HomeScreen) IsLoading() bool {
	return h.loading
}

// Err returns the last load error
func (h HomeScreen) Err() error {
	return h.err
}

// Page returns the displayed home page
func (h HomeScreen) Page() *domain.HomePage {
	return h.page
}

// IsFiltering reports whether the filter input has focus
func (h HomeScreen) IsFiltering() bool {
	return h.filtering
}

// Results returns the current filter results
func (h HomeScreen) Results() []service.SearchResult {
	return h.results
}

// Cursor returns the selected section and item
func (h HomeScreen) Cursor() (section, item int) {
	if len(h.cursors) == 0 {
		return 0, 0
	}
	return h.section, h.cursors[h.section]
}

// Selected returns the selected item
func (h HomeScreen) Selected() (domain.MediaItem, bool) {
	if h.page == nil || h.section >= len(h.page.Sections) {
		return domain.MediaItem{}, false
	}
	items := h.page.Sections[h.section].Items
	idx := h.cursors[h.section]
	if idx >= len(items) {
		return domain.MediaItem{}, false
	}
	return items[idx], true
}

// SpinnerTick starts the loading animation
func (h HomeScreen) SpinnerTick() tea.Cmd {
	return h.spinner.Tick
}

// Init initializes the component
func (h HomeScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h HomeScreen) Update(msg tea.Msg) (HomeScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !h.loading {
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		return h, cmd

	case tea.KeyMsg:
		if h.filtering {
			return h.updateFilter(msg)
		}
		if h.loading || h.err != nil || h.page == nil || len(h.page.Sections) == 0 {
			return h, nil
		}
		switch {
		case key.Matches(msg, h.keys.Down):
			h.section = min(h.section+1, len(h.page.Sections)-1)
		case key.Matches(msg, h.keys.Up):
			h.section = max(h.section-1, 0)
		case key.Matches(msg, h.keys.Right):
			n := len(h.page.Sections[h.section].Items)
			h.cursors[h.section] = max(min(h.cursors[h.section]+1, n-1), 0)
			h.ensureVisible(h.section)
		case key.Matches(msg, h.keys.Left):
			h.cursors[h.section] = max(h.cursors[h.section]-1, 0)
			h.ensureVisible(h.section)
		case key.Matches(msg, h.keys.Filter):
			if h.page.SearchEnabled {
				h.filtering = true
				h.input.SetValue("")
				h.results = nil
				h.resultCursor = 0
				return h, h.input.Focus()
			}
		}
	}
	return h, nil
}

// updateFilter handles keys while the filter input has focus
func (h HomeScreen) updateFilter(msg tea.KeyMsg) (HomeScreen, tea.Cmd) {
	switch {
	case key.Matches(msg, h.keys.Escape):
		h.closeFilter()
		return h, nil
	case key.Matches(msg, h.keys.Enter):
		if h.resultCursor < len(h.results) {
			r := h.results[h.resultCursor]
			h.section = r.SectionIndex
			h.cursors[r.SectionIndex] = r.ItemIndex
			h.ensureVisible(r.SectionIndex)
		}
		h.closeFilter()
		return h, nil
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyCtrlN:
		h.resultCursor = min(h.resultCursor+1, max(len(h.results)-1, 0))
		return h, nil
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyCtrlP:
		h.resultCursor = max(h.resultCursor-1, 0)
		return h, nil
	}

	prev := h.input.Value()
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	if h.input.Value() != prev {
		h.applyFilter()
	}
	return h, cmd
}

func (h *HomeScreen) applyFilter() {
	h.resultCursor = 0
	if h.search == nil {
		h.results = nil
		return
	}
	h.results = h.search.Search(h.input.Value())
}

func (h *HomeScreen) closeFilter() {
	h.filtering = false
	h.results = nil
	h.resultCursor = 0
	h.input.Blur()
	h.input.SetValue("")
}

// cardWidth returns the outer width of a card in section i
func (h HomeScreen) cardWidth(i int) int {
	percent := defaultCardPercent
	if h.page != nil && i < len(h.page.Sections) && h.page.Sections[i].IsLarge() {
		percent = largeCardPercent
	}
	return max(h.width*percent/100, minCardWidth)
}

// visibleCards returns how many cards of section i fit on one row
func (h HomeScreen) visibleCards(i int) int {
	return max(h.width/h.cardWidth(i), 1)
}

// ensureVisible scrolls section i so its selected item is on screen
func (h *HomeScreen) ensureVisible(i int) {
	if i >= len(h.scrolls) {
		return
	}
	visible := h.visibleCards(i)
	cursor := h.cursors[i]
	if cursor < h.scrolls[i] {
		h.scrolls[i] = cursor
	} else if cursor >= h.scrolls[i]+visible {
		h.scrolls[i] = cursor - visible + 1
	}
}

// View renders the home screen
func (h HomeScreen) View() string {
	if h.width <= 0 || h.height <= 0 {
		return ""
	}
	if h.loading {
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center,
			h.spinner.View()+" "+styles.DimStyle.Render("Loading..."))
	}
	if h.err != nil {
		msg := styles.ErrorStyle.Render("Failed to load content") + "\n" +
			styles.DimStyle.Render("press r to retry")
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, msg)
	}

	header := styles.HeaderStyle.Render("Snips")
	if h.page != nil && h.page.SearchEnabled && !h.filtering {
		header += styles.DimStyle.Render("  / to filter")
	}

	var body string
	switch {
	case h.filtering:
		body = h.renderFilter()
	case h.page == nil || len(h.page.Sections) == 0:
		body = styles.DimStyle.Render(" No content available")
	default:
		body = h.renderSections(h.height - headerLines)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

// renderSections renders every section and windows the result so the
// selected section stays on screen
func (h HomeScreen) renderSections(height int) string {
	var lines []string
	selectedStart, selectedEnd := 0, 0
	for i, section := range h.page.Sections {
		if i == h.section {
			selectedStart = len(lines)
		}
		lines = append(lines, strings.Split(h.renderSection(i, section), "\n")...)
		if i == h.section {
			selectedEnd = len(lines)
		}
		lines = append(lines, "")
	}

	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}

	top := 0
	if selectedEnd > height {
		top = min(selectedEnd-height, selectedStart)
	}
	end := min(top+height, len(lines))
	return strings.Join(lines[top:end], "\n")
}

func (h HomeScreen) renderSection(i int, section domain.HomeSection) string {
	title := styles.SectionTitleStyle.Render(section.Title)
	if i == h.section {
		title = styles.AccentStyle.Render("›") + title
	} else {
		title = " " + title
	}
	if len(section.Items) == 0 {
		return title + "\n" + styles.DimStyle.Render("   Nothing here yet")
	}

	width := h.cardWidth(i)
	start := h.scrolls[i]
	end := min(start+h.visibleCards(i), len(section.Items))

	cards := make([]string, 0, end-start)
	for j := start; j < end; j++ {
		selected := i == h.section && j == h.cursors[i]
		cards = append(cards, renderCard(section.Items[j], width, section.IsLarge(), selected))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if more := len(section.Items) - end; more > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, styles.DimStyle.Render(" ›"))
	}
	return title + "\n" + row
}

// renderCard renders one poster card
func renderCard(item domain.MediaItem, width int, large, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.SelectedCardStyle
	}
	inner := max(width-style.GetHorizontalFrameSize(), 1)

	lines := make([]string, 0, largeCardLines)
	lines = append(lines, styles.TitleStyle.Render(styles.Truncate(item.Title, inner)))

	if len(item.Badges) > 0 {
		var badges []string
		used := 0
		for _, b := range item.Badges {
			w := len([]rune(b)) + 3
			if used+w > inner {
				break
			}
			badges = append(badges, styles.BadgeStyle.Render(b))
			used += w
		}
		lines = append(lines, strings.Join(badges, " "))
	} else {
		lines = append(lines, "")
	}

	meta := make([]string, 0, 2)
	if item.HasVideo() {
		meta = append(meta, "▶")
	}
	if d := item.FormattedDuration(); d != "" {
		meta = append(meta, d)
	}
	lines = append(lines, styles.DimStyle.Render(strings.Join(meta, " ")))

	if large {
		if len(item.Genres) > 0 {
			lines = append(lines, styles.SubtitleStyle.Render(styles.Truncate(strings.Join(item.Genres, " · "), inner)))
		} else {
			lines = append(lines, "")
		}
		lines = append(lines, styles.DimStyle.Render(styles.Truncate(item.Poster(), inner)))
	}

	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// renderFilter renders the filter input and its results
func (h HomeScreen) renderFilter() string {
	var b strings.Builder
	b.WriteString(h.input.View())
	b.WriteString("\n\n")

	if h.input.Value() == "" {
		b.WriteString(styles.DimStyle.Render(" Type to filter titles"))
		return b.String()
	}
	if len(h.results) == 0 {
		b.WriteString(styles.DimStyle.Render(" No matches"))
		return b.String()
	}

	limit := min(len(h.results), maxFilterResults, max(h.height-headerLines-3, 1))
	for i := 0; i < limit; i++ {
		r := h.results[i]
		selected := i == h.resultCursor
		prefix := "  "
		if selected {
			prefix = styles.AccentStyle.Render("› ")
		}
		b.WriteString(prefix)
		b.WriteString(highlightMatches(r.Item.Title, r.MatchedIndexes, selected))
		b.WriteString(styles.DimStyle.Render("  " + r.SectionTitle))
		b.WriteString("\n")
	}
	if more := len(h.results) - limit; more > 0 {
		b.WriteString(styles.DimStyle.Render("  …and more"))
	}
	return strings.TrimRight(b.String(), "\n")
}
