package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the static content API
const DefaultBaseURL = "https://snips-testing-data.s3.us-east-2.amazonaws.com"

// envKeyReplacer maps nested keys to env names (api.base_url -> SNIPS_API_BASE_URL)
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all application configuration
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Feed        FeedConfig        `mapstructure:"feed"`
	Player      PlayerConfig      `mapstructure:"player"`
	UI          UIConfig          `mapstructure:"ui"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

// APIConfig holds content API configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds query cache policy
type CacheConfig struct {
	StaleTime  time.Duration `mapstructure:"stale_time"`  // Served without refetch while younger
	GCTime     time.Duration `mapstructure:"gc_time"`     // Evicted once older
	Retry      int           `mapstructure:"retry"`       // Extra attempts after the first failure
	RetryDelay time.Duration `mapstructure:"retry_delay"` // Base for exponential backoff
}

// FeedConfig holds feed screen configuration
type FeedConfig struct {
	VisibilityThreshold float64 `mapstructure:"visibility_threshold"` // Fraction of an item that must be on screen
	Page                int     `mapstructure:"page"`
}

// PlayerConfig holds external media player configuration
type PlayerConfig struct {
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	StartFlag string   `mapstructure:"start_flag"` // e.g., "--start=" or "--start-time="
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultTab string `mapstructure:"default_tab"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DiagnosticsConfig toggles request/response tracing
type DiagnosticsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			StaleTime:  5 * time.Minute,
			GCTime:     10 * time.Minute,
			Retry:      2,
			RetryDelay: time.Second,
		},
		Feed: FeedConfig{
			VisibilityThreshold: 0.5,
			Page:                1,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			DefaultTab: "Home",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "snips", "snips.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "snips", "snips.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "snips")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "snips")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")
	return loadConfig(v)
}

// LoadConfigFile loads configuration from an explicit file path
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return loadConfig(v)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	// Environment variable overrides (SNIPS_API_BASE_URL, ...)
	v.SetEnvPrefix("SNIPS")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can see it during Unmarshal
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("cache.stale_time", cfg.Cache.StaleTime)
	v.SetDefault("cache.gc_time", cfg.Cache.GCTime)
	v.SetDefault("cache.retry", cfg.Cache.Retry)
	v.SetDefault("cache.retry_delay", cfg.Cache.RetryDelay)
	v.SetDefault("feed.visibility_threshold", cfg.Feed.VisibilityThreshold)
	v.SetDefault("feed.page", cfg.Feed.Page)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("player.start_flag", cfg.Player.StartFlag)
	v.SetDefault("ui.default_tab", cfg.UI.DefaultTab)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("diagnostics.enabled", cfg.Diagnostics.Enabled)
}

// normalize clamps values that would break the cache or the feed
func (c *Config) normalize() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.Cache.Retry < 0 {
		c.Cache.Retry = 0
	}
	if c.Cache.GCTime < c.Cache.StaleTime {
		c.Cache.GCTime = c.Cache.StaleTime
	}
	if c.Feed.VisibilityThreshold <= 0 || c.Feed.VisibilityThreshold > 1 {
		c.Feed.VisibilityThreshold = 0.5
	}
	if c.Feed.Page < 1 {
		c.Feed.Page = 1
	}
}
