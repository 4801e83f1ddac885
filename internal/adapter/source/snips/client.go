package snips

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/snips/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Snips/1.0"

	// maxBodyBytes bounds the size of a single JSON resource
	maxBodyBytes = 16 << 20
)

// API endpoints
const (
	EndpointHomePage = "/homePage.json"
	EndpointFeedPage = "/FeedPage1.json"
)

// Client implements domain.ContentRepository against the static content API.
// It performs no retries; callers decide retry policy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	diag       domain.Diagnostics
	logger     *slog.Logger
	maxBody    int64
}

// NewClient creates a new content API client.
// A zero timeout selects the 10 second default.
func NewClient(baseURL string, timeout time.Duration, diag domain.Diagnostics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if diag == nil {
		diag = domain.NoOpDiagnostics{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		diag:    diag,
		logger:  logger,
		maxBody: maxBodyBytes,
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetHomePage returns the discovery page
func (c *Client) GetHomePage(ctx context.Context) (*domain.HomePage, error) {
	var resp HomePageResponse
	if err := c.getJSON(ctx, EndpointHomePage, nil, &resp); err != nil {
		return nil, err
	}
	return MapHomePage(&resp), nil
}

// GetFeedPage returns a feed page. The server exposes a single fixed
// resource, so page is only recorded for tracing.
func (c *Client) GetFeedPage(ctx context.Context, page int) (*domain.FeedPage, error) {
	var resp FeedPageResponse
	params := map[string]string{"page": strconv.Itoa(page)}
	if err := c.getJSON(ctx, EndpointFeedPage, params, &resp); err != nil {
		return nil, err
	}
	return MapFeedPage(&resp), nil
}

// getJSON performs a GET and decodes the body into dest
func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, dest any) error {
	reqURL := c.baseURL + path
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	c.diag.Request(domain.RequestEvent{
		RequestID: requestID,
		Method:    http.MethodGet,
		URL:       reqURL,
		Params:    params,
	})
	c.logger.Debug("api request", "url", reqURL, "requestID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Caller gave up; not a connectivity problem.
			return ctx.Err()
		}
		return c.fail(requestID, reqURL, &domain.NetworkError{URL: reqURL, Err: err})
	}
	defer resp.Body.Close()

	// One byte past the limit tells a full body from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return c.fail(requestID, reqURL, &domain.NetworkError{URL: reqURL, Err: err})
	}

	c.diag.Response(domain.ResponseEvent{
		RequestID: requestID,
		URL:       reqURL,
		Status:    resp.StatusCode,
		Bytes:     len(body),
		Elapsed:   time.Since(started),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("api request error", "status", resp.StatusCode, "url", reqURL, "bodyLen", len(body))
		return c.fail(requestID, reqURL, &domain.HTTPError{URL: reqURL, Status: resp.StatusCode})
	}

	if int64(len(body)) > c.maxBody {
		c.logger.Error("api response too large", "url", reqURL, "limit", c.maxBody)
		return c.fail(requestID, reqURL, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrResponseTooLarge, reqURL, c.maxBody))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "url", reqURL, "bodyLen", len(body))
		return c.fail(requestID, reqURL, &domain.DecodeError{URL: reqURL, Err: err})
	}

	return nil
}

// fail reports err to the diagnostics sink and returns it
func (c *Client) fail(requestID, url string, err error) error {
	c.diag.Error(requestID, url, err)
	return err
}
