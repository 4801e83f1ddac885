package tui

import (
	"time"

	"github.com/mmcdole/snips/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// HomeLoadedMsg signals that the home page has been loaded.
// Gen is the mount generation the fetch was issued for.
type HomeLoadedMsg struct {
	Page *domain.HomePage
	Gen  uint64
}

// FeedLoadedMsg signals that a feed page has been loaded
type FeedLoadedMsg struct {
	Page    *domain.FeedPage
	PageNum int
	Gen     uint64
}

// LoadFailedMsg signals that a screen's fetch failed after retries
type LoadFailedMsg struct {
	Tab Tab
	Gen uint64
	Err error
}

// PlaybackStartedMsg signals that the external player was launched
type PlaybackStartedMsg struct {
	Item   domain.MediaItem
	Offset time.Duration
}

// TickMsg advances playback clocks
type TickMsg struct {
	Elapsed time.Duration
}

// PrunedMsg reports a query cache sweep
type PrunedMsg struct {
	Count int
}

// ClearStatusMsg clears the status bar message set at generation Gen
type ClearStatusMsg struct {
	Gen uint64
}
