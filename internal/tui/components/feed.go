package components

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/snips/internal/domain"
	"github.com/mmcdole/snips/internal/feed"
	"github.com/mmcdole/snips/internal/tui/styles"
)

const (
	captionMoreThreshold = 100 // Runes before a collapsed caption shows "...more"
	captionCollapsed     = 2   // Lines shown while collapsed
	railWidth            = 10
	noDescription        = "No description available"
)

// FeedScreen is the vertically paged "For you" feed. Every item is one
// viewport tall; the tracker decides which one plays.
type FeedScreen struct {
	items    []domain.MediaItem
	loading  bool
	err      error
	spinner  spinner.Model
	tracker  *feed.Tracker
	view     *feed.Viewability
	clocks   []Playback
	expanded map[int]bool
	offset   int // Scroll position in rows

	width  int
	height int
	keys   FeedKeyMap
}

// NewFeedScreen creates an empty feed screen
func NewFeedScreen(threshold float64) FeedScreen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.AccentStyle
	return FeedScreen{
		spinner:  s,
		tracker:  feed.NewTracker(),
		view:     feed.NewViewability(threshold),
		expanded: make(map[int]bool),
		keys:     DefaultFeedKeyMap(),
	}
}

// SetSize updates the screen dimensions and keeps the active item snapped
func (f *FeedScreen) SetSize(width, height int) {
	f.width = width
	f.height = height
	if active, ok := f.tracker.Active(); ok {
		f.offset = active * f.itemHeight()
		f.view.Reset()
		f.scrollTo(f.offset)
	}
}

// SetLoading shows the loading indicator
func (f *FeedScreen) SetLoading() tea.Cmd {
	f.loading = true
	f.err = nil
	return f.spinner.Tick
}

// SetPage installs a freshly fetched page. The first item becomes active
// and all per-item state is dropped.
func (f *FeedScreen) SetPage(page *domain.FeedPage) {
	f.loading = false
	f.err = nil
	f.items = nil
	if page != nil {
		f.items = page.Items
	}

	f.tracker.Replace(len(f.items))
	f.view.Reset()
	f.clocks = make([]Playback, len(f.items))
	for i, item := range f.items {
		f.clocks[i] = NewPlayback(item.Duration)
	}
	f.expanded = make(map[int]bool)
	f.offset = 0
	f.scrollTo(0)
}

// SetError shows the generic failure message
func (f *FeedScreen) SetError(err error) {
	f.loading = false
	f.err = err
}

// IsLoading reports whether a fetch is pending
func (f FeedScreen) IsLoading() bool {
	return f.loading
}

// Err returns the last load error
func (f FeedScreen) Err() error {
	return f.err
}

// Items returns the items in presentation order
func (f FeedScreen) Items() []domain.MediaItem {
	return f.items
}

// Tracker exposes the playback tracker
func (f FeedScreen) Tracker() *feed.Tracker {
	return f.tracker
}

// Offset returns the scroll position in rows
func (f FeedScreen) Offset() int {
	return f.offset
}

// Expanded reports whether item i shows its full caption
func (f FeedScreen) Expanded(i int) bool {
	return f.expanded[i]
}

// Active returns the active item and its playback position
func (f FeedScreen) Active() (domain.MediaItem, time.Duration, bool) {
	idx, ok := f.tracker.Active()
	if !ok || idx >= len(f.items) {
		return domain.MediaItem{}, 0, false
	}
	return f.items[idx], f.clocks[idx].Position(), true
}

// Clock returns the playback clock of item i
func (f FeedScreen) Clock(i int) Playback {
	if i < 0 || i >= len(f.clocks) {
		return Playback{paused: true}
	}
	return f.clocks[i]
}

// Advance moves the active item's clock forward
func (f *FeedScreen) Advance(d time.Duration) {
	if idx, ok := f.tracker.Active(); ok && idx < len(f.clocks) {
		f.clocks[idx].Advance(d)
	}
}

// SpinnerTick starts the loading animation
func (f FeedScreen) SpinnerTick() tea.Cmd {
	return f.spinner.Tick
}

// Init initializes the component
func (f FeedScreen) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (f FeedScreen) Update(msg tea.Msg) (FeedScreen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !f.loading {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		if f.loading || f.err != nil || len(f.items) == 0 {
			return f, nil
		}
		switch {
		case key.Matches(msg, f.keys.Down):
			f.scrollTo(f.offset + 1)
		case key.Matches(msg, f.keys.Up):
			f.scrollTo(f.offset - 1)
		case key.Matches(msg, f.keys.Next):
			f.scrollTo((f.offset/f.itemHeight() + 1) * f.itemHeight())
		case key.Matches(msg, f.keys.Previous):
			ih := f.itemHeight()
			target := (f.offset / ih) * ih
			if target == f.offset {
				target -= ih
			}
			f.scrollTo(target)
		case key.Matches(msg, f.keys.Toggle):
			if idx, ok := f.tracker.Active(); ok {
				f.tracker.TogglePlayPause(idx)
				f.applyIntents()
			}
		case key.Matches(msg, f.keys.Caption):
			if idx, ok := f.tracker.Active(); ok {
				f.expanded[idx] = !f.expanded[idx]
			}
		}
	}
	return f, nil
}

func (f FeedScreen) itemHeight() int {
	return max(f.height, 1)
}

// scrollTo moves the viewport and forwards visibility changes to the tracker
func (f *FeedScreen) scrollTo(offset int) {
	n := len(f.items)
	ih := f.itemHeight()
	maxOffset := max((n-1)*ih, 0)
	f.offset = max(0, min(offset, maxOffset))

	if visible, changed := f.view.Update(f.offset, ih, ih, n); changed {
		f.tracker.OnVisibilityChanged(visible)
	}
	f.applyIntents()
}

// applyIntents pushes the tracker's paused flags into the clocks
func (f *FeedScreen) applyIntents() {
	active, ok := f.tracker.Active()
	for i := range f.clocks {
		f.clocks[i].Apply(f.tracker.Paused(i), ok && i == active)
	}
}

// View renders the visible rows of the feed
func (f FeedScreen) View() string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}
	if f.loading {
		return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center,
			f.spinner.View()+" "+styles.DimStyle.Render("Loading feed..."))
	}
	if f.err != nil {
		msg := styles.ErrorStyle.Render("Failed to load feed") + "\n" +
			styles.DimStyle.Render("press r to retry")
		return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, msg)
	}
	if len(f.items) == 0 {
		return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render("No snips yet"))
	}

	ih := f.itemHeight()
	first := f.offset / ih
	last := min((f.offset+f.height-1)/ih, len(f.items)-1)

	var lines []string
	for i := first; i <= last; i++ {
		lines = append(lines, fitLines(f.renderItem(i), ih)...)
	}
	start := f.offset - first*ih
	end := min(start+f.height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

// renderItem renders item i as one full-height page
func (f FeedScreen) renderItem(i int) string {
	item := f.items[i]
	clock := f.clocks[i]
	infoWidth := max(f.width-railWidth-1, 10)

	var info strings.Builder
	info.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d/%d", i+1, len(f.items))))
	if clock.Paused() {
		info.WriteString("  " + styles.PausedStyle.Render("▶ paused"))
	}
	info.WriteString("\n")
	if item.HasVideo() {
		info.WriteString(styles.DimStyle.Render(styles.Truncate("video "+item.VideoURL, infoWidth)))
	} else {
		info.WriteString(styles.DimStyle.Render(styles.Truncate("poster "+item.Poster(), infoWidth)))
	}
	info.WriteString("\n\n")

	info.WriteString(styles.FeedTitleStyle.Render(styles.Truncate(item.Title, infoWidth)))
	info.WriteString("\n")
	info.WriteString(f.renderCaption(i, infoWidth))
	info.WriteString("\n")
	if item.HasVideo() {
		info.WriteString(clock.View(infoWidth))
	} else {
		info.WriteString(styles.DimStyle.Render("poster only"))
	}

	rail := renderRail(item)
	body := lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Width(infoWidth).Render(info.String()),
		" ",
		rail,
	)
	return lipgloss.Place(f.width, f.itemHeight(), lipgloss.Left, lipgloss.Bottom, body)
}

// renderCaption renders the caption, clamped to two lines unless expanded
func (f FeedScreen) renderCaption(i, width int) string {
	caption := f.items[i].Caption
	if caption == "" {
		return styles.CaptionStyle.Render(noDescription)
	}

	lines := strings.Split(wordWrap(caption, width), "\n")
	expanded := f.expanded[i]
	if !expanded && len(lines) > captionCollapsed {
		lines = lines[:captionCollapsed]
	}
	out := styles.CaptionStyle.Render(strings.Join(lines, "\n"))
	if !expanded && utf8.RuneCountInString(caption) > captionMoreThreshold {
		out += "\n" + styles.MoreStyle.Render("...more")
	}
	return out
}

// renderRail renders the Save/Episodes/Share action column
func renderRail(item domain.MediaItem) string {
	actions := []string{
		"♥\n" + item.FormattedSnips(),
		"≡\nEpisodes",
		"↗\nShare",
		"⋯",
	}
	return styles.ActionStyle.Width(railWidth).Render(strings.Join(actions, "\n\n"))
}

// fitLines splits s into exactly n lines, padding or truncating at the end
func fitLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
