package snips

import "encoding/json"

// Title is the wire shape of a single item.
// The API is inconsistent about casing, so both spellings are accepted.
type Title struct {
	ID               string            `json:"id"`
	NameEn           string            `json:"nameEn,omitempty"`
	NameEnSnake      string            `json:"name_en,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	PosterURL        string            `json:"posterUrl,omitempty"`
	PosterURLSnake   string            `json:"poster_url,omitempty"`
	ThumbnailURL     string            `json:"thumbnailUrl,omitempty"`
	Duration         float64           `json:"duration,omitempty"` // seconds
	ReleaseDate      string            `json:"releaseDate,omitempty"`
	Genres           []string          `json:"genres,omitempty"`
	SnipsCount       int               `json:"snipsCount,omitempty"`
	Badges           []json.RawMessage `json:"badges,omitempty"`
	CaptionsEn       string            `json:"captions_en,omitempty"`
	VideoPlaybackURL string            `json:"video_playback_url,omitempty"`
	Link             string            `json:"link,omitempty"`
	Rank             int               `json:"rank,omitempty"`
}

// HomePageComponent is one section of the home page
type HomePageComponent struct {
	ID            string  `json:"id"`
	ComponentType string  `json:"componentType"`
	SectionTitle  string  `json:"sectionTitle"`
	Titles        []Title `json:"titles"`
	Link          string  `json:"link,omitempty"`
}

// HomePageSettings holds page-level feature switches
type HomePageSettings struct {
	Search bool `json:"search"`
}

// HomePageData is the body of the home page response
type HomePageData struct {
	Components []HomePageComponent `json:"components"`
	Settings   *HomePageSettings   `json:"settings,omitempty"`
	PageType   string              `json:"pageType,omitempty"`
}

// HomePageResponse is the root of homePage.json
type HomePageResponse struct {
	UserUUID string       `json:"userUuid,omitempty"`
	Country  string       `json:"country,omitempty"`
	Data     HomePageData `json:"data"`
}

// FeedPageResponse is the root of FeedPage1.json
type FeedPageResponse struct {
	FeedTitles  []Title `json:"feedTitles"`
	Total       int     `json:"total"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	NextPage    int     `json:"nextPage"`
}
