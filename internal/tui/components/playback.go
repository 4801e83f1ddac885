package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/snips/internal/tui/styles"
)

// Playback is the in-terminal stand-in for a video surface. It only keeps a
// looping clock; the item's paused intent comes from the feed tracker.
type Playback struct {
	position time.Duration
	duration time.Duration
	paused   bool
}

// NewPlayback creates a paused clock for an item of the given length.
// A zero duration means unknown; the clock then runs without looping.
func NewPlayback(duration time.Duration) Playback {
	return Playback{duration: duration, paused: true}
}

// Apply sets the paused intent. Pausing an item that is no longer active
// rewinds it, the way an off-screen video restarts from the top.
func (p *Playback) Apply(paused, active bool) {
	p.paused = paused
	if !active {
		p.position = 0
	}
}

// Advance moves the clock forward by d unless paused
func (p *Playback) Advance(d time.Duration) {
	if p.paused || d <= 0 {
		return
	}
	p.position += d
	if p.duration > 0 && p.position >= p.duration {
		p.position %= p.duration
	}
}

// Position returns the current offset
func (p Playback) Position() time.Duration {
	return p.position
}

// Paused reports whether the clock is stopped
func (p Playback) Paused() bool {
	return p.paused
}

// View renders a progress line of the given width
func (p Playback) View(width int) string {
	icon := "▶"
	if p.paused {
		icon = "❚❚"
	}
	stamp := formatClock(p.position)
	if p.duration > 0 {
		stamp += " / " + formatClock(p.duration)
	}

	barWidth := width - len(stamp) - 4
	if barWidth < 4 {
		return icon + " " + stamp
	}

	filled := 0
	if p.duration > 0 {
		filled = int(float64(barWidth) * float64(p.position) / float64(p.duration))
	}
	filled = min(filled, barWidth)

	bar := styles.ProgressFullStyle.Render(strings.Repeat("━", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("─", barWidth-filled))
	return icon + " " + bar + " " + styles.DimStyle.Render(stamp)
}

// formatClock formats a duration as MM:SS or H:MM:SS
func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
