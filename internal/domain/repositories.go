package domain

import (
	"context"
)

// ContentRepository provides read-only access to the content API
type ContentRepository interface {
	// GetHomePage returns the discovery page sections
	GetHomePage(ctx context.Context) (*HomePage, error)

	// GetFeedPage returns a page of the vertical feed.
	// The backing resource is page-invariant; page is accepted but not
	// interpreted by the server.
	GetFeedPage(ctx context.Context, page int) (*FeedPage, error)
}
