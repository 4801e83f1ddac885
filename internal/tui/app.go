package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/snips/internal/domain"
	"github.com/mmcdole/snips/internal/service"
	"github.com/mmcdole/snips/internal/tui/components"
	"github.com/mmcdole/snips/internal/tui/styles"
)

// Tab identifies a bottom navigation destination
type Tab int

const (
	TabHome Tab = iota
	TabFeed
	TabRewards
	TabProfile
)

var tabLabels = []string{"Home", "For you", "Rewards", "Profile"}

// String returns the tab label
func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabLabels) {
		return "Unknown"
	}
	return tabLabels[t]
}

// ParseTab maps a label to a tab, case-insensitively. Unknown labels map
// to TabHome.
func ParseTab(name string) Tab {
	for i, label := range tabLabels {
		if strings.EqualFold(strings.TrimSpace(name), label) {
			return Tab(i)
		}
	}
	return TabHome
}

// ChromeHeight is the tab bar plus the status line
const ChromeHeight = components.TabBarHeight + 1

// Options configures the model
type Options struct {
	DefaultTab          Tab
	FeedPage            int
	VisibilityThreshold float64
	Logger              *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	ContentSvc  *service.ContentService
	SearchSvc   *service.SearchService
	PlaybackSvc *service.PlaybackService

	// Screens
	Tab         Tab
	Home        components.HomeScreen
	Feed        components.FeedScreen // Only meaningful while FeedMounted
	FeedMounted bool
	Rewards     components.PlaceholderScreen
	Profile     components.PlaceholderScreen
	TabBar      components.TabBar

	// Mount generations; results for any other generation are discarded
	homeGen uint64
	feedGen uint64

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusGen   uint64

	opts   Options
	logger *slog.Logger
}

// NewModel creates a new application model. The home screen is mounted
// immediately; the feed is mounted when its tab is first shown.
func NewModel(
	contentSvc *service.ContentService,
	searchSvc *service.SearchService,
	playbackSvc *service.PlaybackService,
	opts Options,
) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.FeedPage < 1 {
		opts.FeedPage = 1
	}

	m := Model{
		ContentSvc:  contentSvc,
		SearchSvc:   searchSvc,
		PlaybackSvc: playbackSvc,
		Home:        components.NewHomeScreen(searchSvc),
		Rewards:     components.NewPlaceholderScreen("Rewards"),
		Profile:     components.NewPlaceholderScreen("Profile"),
		TabBar:      components.NewTabBar(tabLabels),
		opts:        opts,
		logger:      logger,
	}

	m.homeGen++
	m.Home.SetLoading()

	m.Tab = opts.DefaultTab
	if m.Tab < TabHome || m.Tab > TabProfile {
		m.Tab = TabHome
	}
	m.TabBar.SetActive(int(m.Tab))
	if m.Tab == TabFeed {
		m.mountFeed()
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		LoadHomeCmd(m.ContentSvc, m.homeGen, false),
		m.Home.SpinnerTick(),
		TickCmd(tickInterval),
		PruneCmd(m.ContentSvc, pruneInterval),
	}
	if m.FeedMounted {
		cmds = append(cmds,
			LoadFeedCmd(m.ContentSvc, m.opts.FeedPage, m.feedGen, false),
			m.Feed.SpinnerTick(),
		)
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case HomeLoadedMsg:
		if msg.Gen != m.homeGen {
			m.logger.Debug("discarding stale home result", "gen", msg.Gen, "current", m.homeGen)
			return m, nil
		}
		m.Home.SetPage(msg.Page)
		return m, nil

	case FeedLoadedMsg:
		if !m.FeedMounted || msg.Gen != m.feedGen {
			m.logger.Debug("discarding feed result for unmounted screen", "gen", msg.Gen, "current", m.feedGen)
			return m, nil
		}
		m.Feed.SetPage(msg.Page)
		return m, nil

	case LoadFailedMsg:
		return m.handleLoadFailed(msg), nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.Home, cmd = m.Home.Update(msg)
		cmds = append(cmds, cmd)
		if m.FeedMounted {
			m.Feed, cmd = m.Feed.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case TickMsg:
		if m.FeedMounted && m.Tab == TabFeed {
			m.Feed.Advance(msg.Elapsed)
		}
		return m, TickCmd(tickInterval)

	case PrunedMsg:
		if msg.Count > 0 {
			m.logger.Debug("pruned query cache", "count", msg.Count)
		}
		return m, PruneCmd(m.ContentSvc, pruneInterval)

	case PlaybackStartedMsg:
		return m, m.setStatus("Opened "+msg.Item.Title+" in external player", false)

	case ErrMsg:
		m.logger.Error("command failed", "error", msg.Err, "context", msg.Context)
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.Gen == m.statusGen {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg routes keys to global bindings or the active screen
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Abort) {
		return m, tea.Quit
	}

	// The filter input owns every other key while it has focus
	if m.Tab == TabHome && m.Home.IsFiltering() {
		var cmd tea.Cmd
		m.Home, cmd = m.Home.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.NextTab):
		return m.switchTab(Tab((int(m.Tab) + 1) % len(tabLabels)))
	case key.Matches(msg, Keys.PrevTab):
		return m.switchTab(Tab((int(m.Tab) + len(tabLabels) - 1) % len(tabLabels)))
	case key.Matches(msg, Keys.Tab1):
		return m.switchTab(TabHome)
	case key.Matches(msg, Keys.Tab2):
		return m.switchTab(TabFeed)
	case key.Matches(msg, Keys.Tab3):
		return m.switchTab(TabRewards)
	case key.Matches(msg, Keys.Tab4):
		return m.switchTab(TabProfile)
	case key.Matches(msg, Keys.Refresh):
		return m.refresh()
	case key.Matches(msg, Keys.Play):
		return m.play()
	}

	var cmd tea.Cmd
	switch m.Tab {
	case TabHome:
		m.Home, cmd = m.Home.Update(msg)
	case TabFeed:
		if m.FeedMounted {
			m.Feed, cmd = m.Feed.Update(msg)
		}
	}
	return m, cmd
}

// switchTab changes the active tab. Leaving the feed unmounts it, dropping
// its tracker and playback state; entering it mounts a fresh screen.
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	if t == m.Tab {
		return m, nil
	}

	if m.Tab == TabFeed {
		m.unmountFeed()
	}
	m.Tab = t
	m.TabBar.SetActive(int(t))
	m.logger.Debug("switched tab", "tab", t.String())

	if t == TabFeed {
		cmd := m.mountFeed()
		return m, tea.Batch(cmd, LoadFeedCmd(m.ContentSvc, m.opts.FeedPage, m.feedGen, false))
	}
	return m, nil
}

// mountFeed creates a fresh feed screen under a new generation
func (m *Model) mountFeed() tea.Cmd {
	m.feedGen++
	m.Feed = components.NewFeedScreen(m.opts.VisibilityThreshold)
	m.Feed.SetSize(m.Width, m.contentHeight())
	m.FeedMounted = true
	return m.Feed.SetLoading()
}

// unmountFeed drops the feed screen; in-flight results become stale
func (m *Model) unmountFeed() {
	m.feedGen++
	m.FeedMounted = false
	m.Feed = components.FeedScreen{}
}

// refresh refetches the current screen, bypassing the cache
func (m Model) refresh() (tea.Model, tea.Cmd) {
	switch m.Tab {
	case TabHome:
		m.homeGen++
		cmd := m.Home.SetLoading()
		return m, tea.Batch(cmd, LoadHomeCmd(m.ContentSvc, m.homeGen, true))
	case TabFeed:
		if !m.FeedMounted {
			return m, nil
		}
		m.feedGen++
		cmd := m.Feed.SetLoading()
		return m, tea.Batch(cmd, LoadFeedCmd(m.ContentSvc, m.opts.FeedPage, m.feedGen, true))
	}
	return m, nil
}

// play hands the selected or active item to the external player. Feed
// items start at their in-app playback position.
func (m Model) play() (tea.Model, tea.Cmd) {
	var item domain.MediaItem
	var offset time.Duration
	var ok bool

	switch m.Tab {
	case TabHome:
		item, ok = m.Home.Selected()
	case TabFeed:
		if m.FeedMounted {
			item, offset, ok = m.Feed.Active()
		}
	}
	if !ok {
		return m, nil
	}
	if !item.HasVideo() {
		return m, m.setStatus("No video for "+item.Title, true)
	}
	if m.PlaybackSvc == nil {
		return m, nil
	}
	return m, PlayCmd(m.PlaybackSvc, item, offset)
}

// handleLoadFailed shows the generic error on the screen the fetch was for
func (m Model) handleLoadFailed(msg LoadFailedMsg) Model {
	switch msg.Tab {
	case TabHome:
		if msg.Gen != m.homeGen {
			return m
		}
		m.logger.Error("failed to load content", "error", msg.Err)
		m.Home.SetError(msg.Err)
	case TabFeed:
		if !m.FeedMounted || msg.Gen != m.feedGen {
			return m
		}
		m.logger.Error("failed to load feed", "error", msg.Err)
		m.Feed.SetError(msg.Err)
	}
	return m
}

// setStatus shows a transient status line message
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusGen++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusLifetime, m.statusGen)
}

// contentHeight returns the rows available to the active screen
func (m Model) contentHeight() int {
	return max(m.Height-ChromeHeight, 0)
}

// updateLayout resizes every screen
func (m *Model) updateLayout() {
	h := m.contentHeight()
	m.Home.SetSize(m.Width, h)
	if m.FeedMounted {
		m.Feed.SetSize(m.Width, h)
	}
	m.Rewards.SetSize(m.Width, h)
	m.Profile.SetSize(m.Width, h)
	m.TabBar.SetWidth(m.Width)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var content string
	switch m.Tab {
	case TabHome:
		content = m.Home.View()
	case TabFeed:
		content = m.Feed.View()
	case TabRewards:
		content = m.Rewards.View()
	case TabProfile:
		content = m.Profile.View()
	}
	content = lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatus(), m.TabBar.View())
}

// renderStatus renders the status message or the key hints for the tab
func (m Model) renderStatus() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(" " + m.StatusMsg)
		}
		return styles.AccentStyle.Render(" " + m.StatusMsg)
	}

	hints := [][2]string{{"tab", "switch"}}
	switch m.Tab {
	case TabHome:
		hints = append(hints, [2]string{"hjkl", "browse"}, [2]string{"o", "open"})
		if page := m.Home.Page(); page != nil && page.SearchEnabled {
			hints = append(hints, [2]string{"/", "filter"})
		}
		hints = append(hints, [2]string{"r", "refresh"})
	case TabFeed:
		hints = append(hints, [2]string{"J/K", "next/prev"}, [2]string{"space", "play/pause"},
			[2]string{"e", "caption"}, [2]string{"o", "open"}, [2]string{"r", "refresh"})
	}
	hints = append(hints, [2]string{"q", "quit"})

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.HelpKeyStyle.Render(h[0]) + " " + styles.HelpDescStyle.Render(h[1])
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(" " + strings.Join(parts, "  "))
}
