package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/snips/internal/domain"
)

// SearchEntry is one indexed title and where it sits on the home page
type SearchEntry struct {
	Item         domain.MediaItem
	SectionIndex int
	SectionTitle string
	ItemIndex    int
}

// SearchResult is a ranked match with positions for highlighting
type SearchResult struct {
	SearchEntry
	Distance       int   // Lower is better
	MatchedIndexes []int // Byte offsets in Item.Title
}

// SearchService ranks home page titles against a query
type SearchService struct {
	logger *slog.Logger

	mu          sync.RWMutex
	entries     []SearchEntry
	lowerTitles []string // Pre-computed for case-insensitive matching
}

// NewSearchService creates a new search service
func NewSearchService(logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{logger: logger}
}

// Index replaces the index with every title on the home page
func (s *SearchService) Index(page *domain.HomePage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
	s.lowerTitles = s.lowerTitles[:0]
	if page == nil {
		return
	}

	for si, section := range page.Sections {
		for ii, item := range section.Items {
			s.entries = append(s.entries, SearchEntry{
				Item:         item,
				SectionIndex: si,
				SectionTitle: section.Title,
				ItemIndex:    ii,
			})
			s.lowerTitles = append(s.lowerTitles, strings.ToLower(item.Title))
		}
	}
	s.logger.Debug("indexed home titles", "count", len(s.entries))
}

// Len returns the number of indexed titles
func (s *SearchService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Search returns matching titles, lowest distance first. Ties keep
// presentation order.
func (s *SearchService) Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ranks := fuzzy.RankFindFold(query, s.lowerTitles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	results := make([]SearchResult, len(ranks))
	for i, r := range ranks {
		entry := s.entries[r.OriginalIndex]
		results[i] = SearchResult{
			SearchEntry:    entry,
			Distance:       r.Distance,
			MatchedIndexes: MatchIndexes(query, entry.Item.Title),
		}
	}

	s.logger.Debug("search complete", "query", query, "results", len(results))
	return results
}

// MatchIndexes returns the byte offsets in title matched by query, or nil when
// it does not match. Matching folds case rune by rune, so the offsets index
// title itself.
func MatchIndexes(query, title string) []int {
	if query == "" {
		return nil
	}
	matches := sfuzzy.Find(query, []string{title})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}
