package snips

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/snips/internal/domain"
)

const homeJSON = `{
  "userUuid": "u-1",
  "country": "US",
  "data": {
    "pageType": "HOME",
    "settings": {"search": true},
    "components": [
      {
        "id": "c1",
        "componentType": "LARGE_COVERS",
        "sectionTitle": "Trending",
        "titles": [
          {"id": "t1", "nameEn": "First", "posterUrl": "https://img/1.jpg", "badges": ["NEW"]},
          {"id": "t2", "name_en": "Second", "poster_url": "https://img/2.jpg"}
        ]
      },
      {
        "id": "c2",
        "componentType": "DEFAULT",
        "sectionTitle": "Dramas",
        "titles": [{"id": "t3", "nameEn": "Third", "thumbnailUrl": "https://img/3-thumb.jpg"}]
      }
    ]
  }
}`

const feedJSON = `{
  "feedTitles": [
    {"id": "a", "name_en": "A", "video_playback_url": "https://cdn/a.m3u8", "captions_en": "caption a", "snipsCount": 24000},
    {"id": "b", "nameEn": "B", "posterUrl": "https://img/b.jpg"},
    {"id": "c", "name_en": "C", "nameEn": "C (camel)", "duration": 95}
  ],
  "total": 3,
  "currentPage": 1,
  "totalPages": 1,
  "nextPage": 0
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingDiagnostics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	diag := &recordingDiagnostics{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(server.URL+"/", 2*time.Second, diag, logger), diag
}

type recordingDiagnostics struct {
	requests  []domain.RequestEvent
	responses []domain.ResponseEvent
	errors    []error
}

func (d *recordingDiagnostics) Request(ev domain.RequestEvent)   { d.requests = append(d.requests, ev) }
func (d *recordingDiagnostics) Response(ev domain.ResponseEvent) { d.responses = append(d.responses, ev) }
func (d *recordingDiagnostics) Error(_, _ string, err error)     { d.errors = append(d.errors, err) }
func (d *recordingDiagnostics) Display(string, any)              {}

func TestGetHomePage(t *testing.T) {
	client, diag := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointHomePage {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing JSON content type")
		}
		w.Write([]byte(homeJSON))
	})

	page, err := client.GetHomePage(context.Background())
	if err != nil {
		t.Fatalf("GetHomePage failed: %v", err)
	}

	if page.UserUUID != "u-1" || page.Country != "US" || page.PageType != "HOME" {
		t.Errorf("unexpected page metadata: %+v", page)
	}
	if !page.SearchEnabled {
		t.Error("expected search to be enabled")
	}
	if len(page.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(page.Sections))
	}

	trending := page.Sections[0]
	if trending.Title != "Trending" || !trending.IsLarge() {
		t.Errorf("unexpected first section: %+v", trending)
	}
	if trending.Items[0].Title != "First" || trending.Items[1].Title != "Second" {
		t.Errorf("titles not normalized: %q, %q", trending.Items[0].Title, trending.Items[1].Title)
	}
	if trending.Items[1].PosterURL != "https://img/2.jpg" {
		t.Errorf("snake_case poster not mapped: %q", trending.Items[1].PosterURL)
	}
	if len(trending.Items[0].Badges) != 1 || trending.Items[0].Badges[0] != "NEW" {
		t.Errorf("badges not mapped: %v", trending.Items[0].Badges)
	}
	if page.Sections[1].IsLarge() {
		t.Error("DEFAULT section should not be large")
	}
	if page.Sections[1].Items[0].PosterURL != "https://img/3-thumb.jpg" {
		t.Errorf("poster should fall back to thumbnail, got %q", page.Sections[1].Items[0].PosterURL)
	}

	if len(diag.requests) != 1 || len(diag.responses) != 1 {
		t.Errorf("expected one traced request/response, got %d/%d", len(diag.requests), len(diag.responses))
	}
	if diag.requests[0].RequestID == "" || diag.requests[0].RequestID != diag.responses[0].RequestID {
		t.Error("request and response should share a request ID")
	}
}

func TestGetFeedPageIgnoresPage(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.String())
		w.Write([]byte(feedJSON))
	})

	for _, page := range []int{1, 7} {
		feed, err := client.GetFeedPage(context.Background(), page)
		if err != nil {
			t.Fatalf("GetFeedPage(%d) failed: %v", page, err)
		}
		if len(feed.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(feed.Items))
		}
		ids := feed.IDs()
		if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
			t.Errorf("order not preserved: %v", ids)
		}
	}

	for _, p := range paths {
		if p != EndpointFeedPage {
			t.Errorf("feed should always hit %s, got %s", EndpointFeedPage, p)
		}
	}
}

func TestGetFeedPageNormalization(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedJSON))
	})

	feed, err := client.GetFeedPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetFeedPage failed: %v", err)
	}

	a, b, c := feed.Items[0], feed.Items[1], feed.Items[2]
	if !a.HasVideo() || a.Caption != "caption a" {
		t.Errorf("video/caption not mapped: %+v", a)
	}
	if a.FormattedSnips() != "24 k" {
		t.Errorf("expected '24 k', got %q", a.FormattedSnips())
	}
	if b.HasVideo() {
		t.Error("b has no video")
	}
	if c.Title != "C" {
		t.Errorf("name_en should win over nameEn, got %q", c.Title)
	}
	if c.Duration != 95*time.Second {
		t.Errorf("duration not mapped: %v", c.Duration)
	}
	if feed.Total != 3 || feed.CurrentPage != 1 || feed.TotalPages != 1 {
		t.Errorf("pagination metadata not mapped: %+v", feed)
	}
}

func TestHTTPError(t *testing.T) {
	client, diag := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetHomePage(context.Background())

	var httpErr *domain.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", httpErr.Status)
	}
	if len(diag.errors) != 1 {
		t.Errorf("expected error to reach diagnostics, got %d", len(diag.errors))
	}
}

func TestDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feedTitles": [`))
	})

	_, err := client.GetFeedPage(context.Background(), 1)

	var decodeErr *domain.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestResponseTooLarge(t *testing.T) {
	client, diag := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedJSON))
	})
	client.maxBody = 16

	_, err := client.GetFeedPage(context.Background(), 1)

	if !errors.Is(err, domain.ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %T: %v", err, err)
	}
	var decodeErr *domain.DecodeError
	if errors.As(err, &decodeErr) {
		t.Error("oversized body should not be reported as a decode error")
	}
	if len(diag.errors) != 1 {
		t.Errorf("expected error to reach diagnostics, got %d", len(diag.errors))
	}
}

func TestResponseAtLimit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedJSON))
	})
	client.maxBody = int64(len(feedJSON))

	page, err := client.GetFeedPage(context.Background(), 1)
	if err != nil {
		t.Fatalf("body exactly at the limit should decode: %v", err)
	}
	if len(page.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(page.Items))
	}
}

func TestMapTitlePrefersSnakeCase(t *testing.T) {
	item := MapTitle(Title{
		NameEn:         "camel",
		NameEnSnake:    "snake",
		PosterURL:      "https://img/camel.jpg",
		PosterURLSnake: "https://img/snake.jpg",
		ThumbnailURL:   "https://img/thumb.jpg",
	})
	if item.Title != "snake" {
		t.Errorf("expected name_en to win, got %q", item.Title)
	}
	if item.PosterURL != "https://img/snake.jpg" {
		t.Errorf("expected poster_url to win, got %q", item.PosterURL)
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, time.Second, nil, nil)
	_, err := client.GetHomePage(context.Background())

	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 50*time.Millisecond, nil, nil)
	_, err := client.GetFeedPage(context.Background(), 1)

	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError on timeout, got %T: %v", err, err)
	}
}

func TestCallerCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homeJSON))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetHomePage(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
