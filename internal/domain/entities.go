package domain

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ComponentType distinguishes how a home section is presented
type ComponentType string

const (
	ComponentLargeCovers ComponentType = "LARGE_COVERS"
	ComponentDefault     ComponentType = ""
)

// PlaceholderPosterURL is shown when an item carries no poster reference
const PlaceholderPosterURL = "https://via.placeholder.com/400x800"

// MediaItem is a single title in a feed or home section.
// Items are immutable once fetched.
type MediaItem struct {
	ID           string        // Unique within one response
	Title        string        // Display name
	PosterURL    string        // Poster image reference
	ThumbnailURL string        // Smaller artwork, if any
	VideoURL     string        // Playback reference (empty for poster-only items)
	Caption      string        // Caption / description text
	Tags         []string      // Free-form tags
	Genres       []string      // Genre names
	Badges       []string      // Short labels rendered over the poster
	Duration     time.Duration // Runtime (0 if unknown)
	ReleaseDate  string        // As delivered by the API
	SnipsCount   int           // Number of saves
	Link         string        // Deep link into the content (unused by the UI)
	Rank         int           // Position in a ranked section (0 if unranked)
}

// HasVideo returns true if the item can be played
func (m MediaItem) HasVideo() bool {
	return m.VideoURL != ""
}

// Poster returns the poster reference, falling back to the placeholder
func (m MediaItem) Poster() string {
	if m.PosterURL != "" {
		return m.PosterURL
	}
	return PlaceholderPosterURL
}

// FormattedDuration returns the duration in a human-readable format
func (m MediaItem) FormattedDuration() string {
	if m.Duration <= 0 {
		return ""
	}
	h := int(m.Duration.Hours())
	mins := int(m.Duration.Minutes()) % 60
	secs := int(m.Duration.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormattedSnips returns the save count with an SI suffix (e.g., "24 k")
func (m MediaItem) FormattedSnips() string {
	if m.SnipsCount < 1000 {
		return fmt.Sprintf("%d", m.SnipsCount)
	}
	return humanize.SIWithDigits(float64(m.SnipsCount), 0, "")
}

// FeedPage is one page of the vertical feed
type FeedPage struct {
	Items       []MediaItem // Presentation order
	Total       int
	CurrentPage int
	TotalPages  int
	NextPage    int
}

// IDs returns the item IDs in presentation order
func (p *FeedPage) IDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.ID
	}
	return ids
}

// HomeSection is a titled row of items on the home page
type HomeSection struct {
	ID            string
	Title         string
	ComponentType ComponentType
	Link          string
	Items         []MediaItem // Presentation order
}

// IsLarge returns true for the large-cover presentation
func (s HomeSection) IsLarge() bool {
	return s.ComponentType == ComponentLargeCovers
}

// HomePage is the discovery page payload
type HomePage struct {
	UserUUID      string
	Country       string
	PageType      string
	SearchEnabled bool
	Sections      []HomeSection // Presentation order
}

// ItemCount returns the number of items across all sections
func (p *HomePage) ItemCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, s := range p.Sections {
		n += len(s.Items)
	}
	return n
}
