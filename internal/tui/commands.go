package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/snips/internal/domain"
	"github.com/mmcdole/snips/internal/service"
)

const (
	tickInterval   = 250 * time.Millisecond
	pruneInterval  = time.Minute
	statusLifetime = 4 * time.Second
)

// Command factories for async operations

// LoadHomeCmd loads the home page for mount generation gen.
// refresh drops the cached copy first. The wait carries no deadline of its
// own: each attempt is bounded by the client timeout and the retry budget by
// the cache, so the result is always the cache's final answer.
func LoadHomeCmd(svc *service.ContentService, gen uint64, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var page *domain.HomePage
		var err error
		if refresh {
			page, err = svc.RefreshHome(ctx)
		} else {
			page, err = svc.FetchHome(ctx)
		}
		if err != nil {
			return LoadFailedMsg{Tab: TabHome, Gen: gen, Err: err}
		}
		return HomeLoadedMsg{Page: page, Gen: gen}
	}
}

// LoadFeedCmd loads a feed page for mount generation gen
func LoadFeedCmd(svc *service.ContentService, pageNum int, gen uint64, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var page *domain.FeedPage
		var err error
		if refresh {
			page, err = svc.RefreshFeed(ctx, pageNum)
		} else {
			page, err = svc.FetchFeed(ctx, pageNum)
		}
		if err != nil {
			return LoadFailedMsg{Tab: TabFeed, Gen: gen, Err: err}
		}
		return FeedLoadedMsg{Page: page, PageNum: pageNum, Gen: gen}
	}
}

// PlayCmd hands item off to the external player at offset
func PlayCmd(svc *service.PlaybackService, item domain.MediaItem, offset time.Duration) tea.Cmd {
	return func() tea.Msg {
		if err := svc.PlayFrom(item, offset); err != nil {
			return ErrMsg{Err: err, Context: "opening " + item.Title}
		}
		return PlaybackStartedMsg{Item: item, Offset: offset}
	}
}

// TickCmd returns a command that sends a tick after the given duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Elapsed: d}
	})
}

// PruneCmd sweeps expired query cache entries after d
func PruneCmd(svc *service.ContentService, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return PrunedMsg{Count: svc.Prune()}
	})
}

// ClearStatusCmd clears status generation gen after d
func ClearStatusCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Gen: gen}
	})
}
