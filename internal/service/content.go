package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/snips/internal/domain"
)

// SectionShape is the diagnostics summary of one home section
type SectionShape struct {
	ID            string
	Title         string
	ComponentType domain.ComponentType
	Items         int
}

// ContentService loads home and feed pages through per-resource query caches
type ContentService struct {
	repo   domain.ContentRepository
	diag   domain.Diagnostics
	logger *slog.Logger

	home *QueryCache[*domain.HomePage]
	feed *QueryCache[*domain.FeedPage]
}

// NewContentService creates a new content service
func NewContentService(repo domain.ContentRepository, opts QueryOptions, diag domain.Diagnostics, logger *slog.Logger) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	if diag == nil {
		diag = domain.NoOpDiagnostics{}
	}
	return &ContentService{
		repo:   repo,
		diag:   diag,
		logger: logger,
		home:   NewQueryCache[*domain.HomePage](opts, logger.With("query", "home")),
		feed:   NewQueryCache[*domain.FeedPage](opts, logger.With("query", "feed")),
	}
}

// FetchHome returns the home page, from cache when fresh
func (s *ContentService) FetchHome(ctx context.Context) (*domain.HomePage, error) {
	page, err := s.home.Fetch(ctx, HomeKey(), s.loadHome)
	if err != nil {
		return nil, fmt.Errorf("fetch home page: %w", err)
	}
	return page, nil
}

// FetchFeed returns one feed page, from cache when fresh.
// The content API serves the same page regardless of the page number.
func (s *ContentService) FetchFeed(ctx context.Context, page int) (*domain.FeedPage, error) {
	feed, err := s.feed.Fetch(ctx, FeedKey(page), func(ctx context.Context) (*domain.FeedPage, error) {
		return s.loadFeed(ctx, page)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch feed page %d: %w", page, err)
	}
	return feed, nil
}

// RefreshHome drops the cached home page and loads it again
func (s *ContentService) RefreshHome(ctx context.Context) (*domain.HomePage, error) {
	s.home.Invalidate(HomeKey())
	return s.FetchHome(ctx)
}

// RefreshFeed drops a cached feed page and loads it again
func (s *ContentService) RefreshFeed(ctx context.Context, page int) (*domain.FeedPage, error) {
	s.feed.Invalidate(FeedKey(page))
	return s.FetchFeed(ctx, page)
}

// HomeState returns the current home page snapshot
func (s *ContentService) HomeState() QueryState[*domain.HomePage] {
	return s.home.State(HomeKey())
}

// FeedState returns the current snapshot of a feed page
func (s *ContentService) FeedState(page int) QueryState[*domain.FeedPage] {
	return s.feed.State(FeedKey(page))
}

// Prune evicts expired entries from both caches
func (s *ContentService) Prune() int {
	return s.home.Prune() + s.feed.Prune()
}

// Close cancels in-flight loads
func (s *ContentService) Close() {
	s.home.Close()
	s.feed.Close()
}

func (s *ContentService) loadHome(ctx context.Context) (*domain.HomePage, error) {
	page, err := s.repo.GetHomePage(ctx)
	if err != nil {
		s.logger.Warn("failed to load home page", "error", err)
		return nil, err
	}

	s.logger.Info("loaded home page", "sections", len(page.Sections), "items", page.ItemCount())
	s.diag.Display("homePage", page)
	for _, section := range page.Sections {
		s.diag.Display("homeSection", SectionShape{
			ID:            section.ID,
			Title:         section.Title,
			ComponentType: section.ComponentType,
			Items:         len(section.Items),
		})
	}
	return page, nil
}

func (s *ContentService) loadFeed(ctx context.Context, page int) (*domain.FeedPage, error) {
	feed, err := s.repo.GetFeedPage(ctx, page)
	if err != nil {
		s.logger.Warn("failed to load feed page", "page", page, "error", err)
		return nil, err
	}

	s.logger.Info("loaded feed page", "page", page, "items", len(feed.Items))
	s.diag.Display("feedPage", feed)
	return feed, nil
}
