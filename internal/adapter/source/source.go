package source

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mmcdole/snips/internal/adapter"
	"github.com/mmcdole/snips/internal/adapter/source/snips"
	"github.com/mmcdole/snips/internal/domain"
)

// SourceConfig contains the configuration needed to create a content client
type SourceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates the content API client after validating the base URL.
func NewClient(cfg *SourceConfig, diag domain.Diagnostics, logger *slog.Logger) (domain.ContentRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBaseURL, cfg.BaseURL)
	}

	return snips.NewClient(cfg.BaseURL, cfg.Timeout, diag, logger), nil
}

// NewClientFromConfig creates the content client from the application config
func NewClientFromConfig(cfg *adapter.Config, diag domain.Diagnostics, logger *slog.Logger) (domain.ContentRepository, error) {
	return NewClient(&SourceConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, diag, logger)
}
