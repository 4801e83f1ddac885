package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/snips/internal/adapter"
	"github.com/mmcdole/snips/internal/adapter/source"
	"github.com/mmcdole/snips/internal/service"
	"github.com/mmcdole/snips/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var configPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&configPath, "config", "", "path to a config file")
	flag.Parse()

	if showVersion {
		fmt.Printf("snips %s\n", Version)
		return
	}

	if err := run(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("snips needs an interactive terminal")
	}

	var cfg *adapter.Config
	var err error
	if configPath != "" {
		cfg, err = adapter.LoadConfigFile(configPath)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting snips", "version", Version, "base_url", cfg.API.BaseURL)

	diag := adapter.NewDiagnostics(cfg.Diagnostics, logger)

	repo, err := source.NewClientFromConfig(cfg, diag, logger)
	if err != nil {
		return fmt.Errorf("failed to create content client: %w", err)
	}

	contentSvc := service.NewContentService(repo, service.QueryOptions{
		StaleTime:  cfg.Cache.StaleTime,
		GCTime:     cfg.Cache.GCTime,
		Retry:      cfg.Cache.Retry,
		RetryDelay: cfg.Cache.RetryDelay,
	}, diag, logger)
	defer contentSvc.Close()

	searchSvc := service.NewSearchService(logger)
	playbackSvc := service.NewPlaybackService(adapter.NewLauncher(cfg.Player, logger), logger)

	model := tui.NewModel(contentSvc, searchSvc, playbackSvc, tui.Options{
		DefaultTab:          tui.ParseTab(cfg.UI.DefaultTab),
		FeedPage:            cfg.Feed.Page,
		VisibilityThreshold: cfg.Feed.VisibilityThreshold,
		Logger:              logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
