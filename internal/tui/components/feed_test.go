package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/snips/internal/domain"
)

func newLoadedFeed(t *testing.T, items ...domain.MediaItem) FeedScreen {
	t.Helper()
	f := NewFeedScreen(0.5)
	f.SetSize(60, 20)
	f.SetPage(&domain.FeedPage{Items: items})
	return f
}

func sendKey(f FeedScreen, s string) FeedScreen {
	var msg tea.KeyMsg
	if s == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	f, _ = f.Update(msg)
	return f
}

func TestFeedEmptyPage(t *testing.T) {
	f := newLoadedFeed(t)
	if _, ok := f.Tracker().Active(); ok {
		t.Error("empty feed should have no active item")
	}
	if !strings.Contains(f.View(), "No snips yet") {
		t.Error("expected empty state")
	}
	if _, _, ok := f.Active(); ok {
		t.Error("Active should report nothing")
	}
}

func TestFeedSetPageResetsState(t *testing.T) {
	items := []domain.MediaItem{{ID: "a", Caption: "x"}, {ID: "b"}}
	f := newLoadedFeed(t, items...)
	f = sendKey(f, "J")
	f = sendKey(f, "e")
	if !f.Expanded(1) {
		t.Fatal("caption should be expanded")
	}

	f.SetPage(&domain.FeedPage{Items: items})
	if f.Expanded(1) || f.Offset() != 0 {
		t.Error("new page should reset per-item state")
	}
	if idx, _ := f.Tracker().Active(); idx != 0 {
		t.Errorf("expected item 0 active, got %d", idx)
	}
}

func TestFeedSnapKeepsOffsetAligned(t *testing.T) {
	f := newLoadedFeed(t, domain.MediaItem{ID: "a"}, domain.MediaItem{ID: "b"}, domain.MediaItem{ID: "c"})

	f = sendKey(f, "j")
	f = sendKey(f, "J")
	if f.Offset() != 20 {
		t.Errorf("expected snap to 20, got %d", f.Offset())
	}
	f = sendKey(f, "j")
	f = sendKey(f, "K")
	if f.Offset() != 20 {
		t.Errorf("K inside an item should snap to its top, got %d", f.Offset())
	}
	f = sendKey(f, "K")
	f = sendKey(f, "K")
	if f.Offset() != 0 {
		t.Errorf("expected clamp at 0, got %d", f.Offset())
	}
}

func TestFeedResizeKeepsActiveItem(t *testing.T) {
	f := newLoadedFeed(t, domain.MediaItem{ID: "a"}, domain.MediaItem{ID: "b"})
	f = sendKey(f, "J")

	f.SetSize(60, 30)
	if f.Offset() != 30 {
		t.Errorf("expected offset 30 after resize, got %d", f.Offset())
	}
	if idx, _ := f.Tracker().Active(); idx != 1 {
		t.Errorf("active item changed on resize: %d", idx)
	}
}

func TestFeedCaption(t *testing.T) {
	short := "A short caption"
	long := strings.Repeat("word ", 30)

	f := newLoadedFeed(t,
		domain.MediaItem{ID: "a", Caption: short},
		domain.MediaItem{ID: "b", Caption: long},
		domain.MediaItem{ID: "c"},
	)

	if got := f.renderCaption(0, 40); strings.Contains(got, "...more") {
		t.Error("short caption should not offer more")
	}
	collapsed := f.renderCaption(1, 40)
	if !strings.Contains(collapsed, "...more") {
		t.Error("long caption should offer more")
	}
	if lines := strings.Count(collapsed, "\n") + 1; lines != captionCollapsed+1 {
		t.Errorf("collapsed caption should be %d lines plus more, got %d", captionCollapsed, lines)
	}
	if got := f.renderCaption(2, 40); !strings.Contains(got, noDescription) {
		t.Error("missing caption should show the fallback")
	}
}

func TestFeedKeysIgnoredWhileLoading(t *testing.T) {
	f := newLoadedFeed(t, domain.MediaItem{ID: "a"}, domain.MediaItem{ID: "b"})
	f.SetLoading()
	f = sendKey(f, "J")
	if f.Offset() != 0 {
		t.Error("keys should be ignored while loading")
	}
	if !strings.Contains(f.View(), "Loading feed") {
		t.Error("expected loading view")
	}
}

func TestFeedAdvanceMovesActiveClockOnly(t *testing.T) {
	f := newLoadedFeed(t,
		domain.MediaItem{ID: "a", Duration: time.Minute},
		domain.MediaItem{ID: "b", Duration: time.Minute},
	)
	f.Advance(5 * time.Second)

	if got := f.Clock(0).Position(); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}
	if got := f.Clock(1).Position(); got != 0 {
		t.Errorf("inactive clock moved: %v", got)
	}
	if !f.Clock(9).Paused() {
		t.Error("out of range clock should report paused")
	}
}

func TestFitLines(t *testing.T) {
	if got := fitLines("a\nb", 4); len(got) != 4 || got[0] != "a" {
		t.Errorf("unexpected padding: %q", got)
	}
	if got := fitLines("a\nb\nc", 2); len(got) != 2 || got[0] != "b" {
		t.Errorf("expected the bottom lines kept, got %q", got)
	}
}

func TestWordWrap(t *testing.T) {
	got := wordWrap("the quick brown fox", 10)
	if got != "the quick\nbrown fox" {
		t.Errorf("unexpected wrap: %q", got)
	}
}
