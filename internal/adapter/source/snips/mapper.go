package snips

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mmcdole/snips/internal/domain"
)

// MapHomePage converts the home page response to the domain model
func MapHomePage(resp *HomePageResponse) *domain.HomePage {
	page := &domain.HomePage{
		UserUUID: resp.UserUUID,
		Country:  resp.Country,
		PageType: resp.Data.PageType,
		Sections: make([]domain.HomeSection, 0, len(resp.Data.Components)),
	}
	if resp.Data.Settings != nil {
		page.SearchEnabled = resp.Data.Settings.Search
	}

	for _, c := range resp.Data.Components {
		page.Sections = append(page.Sections, domain.HomeSection{
			ID:            c.ID,
			Title:         c.SectionTitle,
			ComponentType: domain.ComponentType(c.ComponentType),
			Link:          c.Link,
			Items:         MapTitles(c.Titles),
		})
	}
	return page
}

// MapFeedPage converts the feed page response to the domain model
func MapFeedPage(resp *FeedPageResponse) *domain.FeedPage {
	return &domain.FeedPage{
		Items:       MapTitles(resp.FeedTitles),
		Total:       resp.Total,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.TotalPages,
		NextPage:    resp.NextPage,
	}
}

// MapTitles converts wire titles to media items, preserving order
func MapTitles(titles []Title) []domain.MediaItem {
	items := make([]domain.MediaItem, len(titles))
	for i, t := range titles {
		items[i] = MapTitle(t)
	}
	return items
}

// MapTitle normalizes one wire title. Snake-case fields win over their
// camelCase twins for home and feed titles alike; the poster falls back to
// the thumbnail.
func MapTitle(t Title) domain.MediaItem {
	return domain.MediaItem{
		ID:           t.ID,
		Title:        firstNonEmpty(t.NameEnSnake, t.NameEn),
		PosterURL:    firstNonEmpty(t.PosterURLSnake, t.PosterURL, t.ThumbnailURL),
		ThumbnailURL: t.ThumbnailURL,
		VideoURL:     t.VideoPlaybackURL,
		Caption:      strings.TrimSpace(t.CaptionsEn),
		Tags:         t.Tags,
		Genres:       t.Genres,
		Badges:       mapBadges(t.Badges),
		Duration:     time.Duration(t.Duration * float64(time.Second)),
		ReleaseDate:  t.ReleaseDate,
		SnipsCount:   t.SnipsCount,
		Link:         t.Link,
		Rank:         t.Rank,
	}
}

// mapBadges accepts plain strings or objects carrying a label
func mapBadges(raw []json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	badges := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			if s != "" {
				badges = append(badges, s)
			}
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(r, &obj); err != nil {
			continue
		}
		for _, key := range []string{"text", "label", "title", "name"} {
			if v, ok := obj[key].(string); ok && v != "" {
				badges = append(badges, v)
				break
			}
		}
	}
	return badges
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
