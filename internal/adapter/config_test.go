package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("unexpected base URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Cache.StaleTime != 5*time.Minute || cfg.Cache.GCTime != 10*time.Minute {
		t.Errorf("unexpected cache windows: stale=%v gc=%v", cfg.Cache.StaleTime, cfg.Cache.GCTime)
	}
	if cfg.Cache.Retry != 2 {
		t.Errorf("expected 2 retries, got %d", cfg.Cache.Retry)
	}
	if cfg.Feed.VisibilityThreshold != 0.5 {
		t.Errorf("expected 0.5 threshold, got %v", cfg.Feed.VisibilityThreshold)
	}
	if cfg.Diagnostics.Enabled {
		t.Error("diagnostics should be off by default")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `api:
  base_url: http://localhost:9000
  timeout: 3s
cache:
  stale_time: 1m
  retry: 4
feed:
  visibility_threshold: 0.75
diagnostics:
  enabled: true
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:9000" {
		t.Errorf("base URL not loaded: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("timeout not loaded: %v", cfg.API.Timeout)
	}
	if cfg.Cache.StaleTime != time.Minute {
		t.Errorf("stale time not loaded: %v", cfg.Cache.StaleTime)
	}
	if cfg.Cache.GCTime != 10*time.Minute {
		t.Errorf("gc time should keep its default, got %v", cfg.Cache.GCTime)
	}
	if cfg.Cache.Retry != 4 {
		t.Errorf("retry not loaded: %d", cfg.Cache.Retry)
	}
	if cfg.Feed.VisibilityThreshold != 0.75 {
		t.Errorf("threshold not loaded: %v", cfg.Feed.VisibilityThreshold)
	}
	if !cfg.Diagnostics.Enabled {
		t.Error("diagnostics not enabled")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ui:\n  default_tab: Home\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SNIPS_UI_DEFAULT_TAB", "For you")

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if cfg.UI.DefaultTab != "For you" {
		t.Errorf("env override not applied: %q", cfg.UI.DefaultTab)
	}
}

func TestNormalizeClampsInvalidValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.BaseURL = ""
	cfg.Cache.Retry = -1
	cfg.Cache.StaleTime = 20 * time.Minute
	cfg.Feed.VisibilityThreshold = 1.5
	cfg.Feed.Page = 0

	cfg.normalize()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("empty base URL should fall back to default")
	}
	if cfg.Cache.Retry != 0 {
		t.Errorf("negative retry should clamp to 0, got %d", cfg.Cache.Retry)
	}
	if cfg.Cache.GCTime != 20*time.Minute {
		t.Errorf("gc time should never be shorter than stale time, got %v", cfg.Cache.GCTime)
	}
	if cfg.Feed.VisibilityThreshold != 0.5 {
		t.Errorf("threshold should reset to 0.5, got %v", cfg.Feed.VisibilityThreshold)
	}
	if cfg.Feed.Page != 1 {
		t.Errorf("page should clamp to 1, got %d", cfg.Feed.Page)
	}
}

func TestNewDiagnostics(t *testing.T) {
	if _, ok := NewDiagnostics(DiagnosticsConfig{}, nil).(*LogDiagnostics); ok {
		t.Error("disabled diagnostics should be a no-op")
	}
	if _, ok := NewDiagnostics(DiagnosticsConfig{Enabled: true}, NullLogger()).(*LogDiagnostics); !ok {
		t.Error("enabled diagnostics should log")
	}
}
