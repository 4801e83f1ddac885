package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/snips/internal/domain"
)

// launcher abstracts media player launching (consumer-defined interface)
type launcher interface {
	Launch(item domain.MediaItem, startOffset time.Duration) error
}

// PlaybackService hands videos off to an external player
type PlaybackService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewPlaybackService creates a new playback service
func NewPlaybackService(launcher launcher, logger *slog.Logger) *PlaybackService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaybackService{
		launcher: launcher,
		logger:   logger,
	}
}

// Play opens item in the external player from the beginning
func (s *PlaybackService) Play(item domain.MediaItem) error {
	return s.PlayFrom(item, 0)
}

// PlayFrom opens item in the external player at offset
func (s *PlaybackService) PlayFrom(item domain.MediaItem, offset time.Duration) error {
	if !item.HasVideo() {
		s.logger.Warn("item has no video", "itemID", item.ID, "title", item.Title)
		return domain.ErrNoVideo
	}

	s.logger.Info("launching playback", "title", item.Title, "itemID", item.ID, "offset", offset)
	if err := s.launcher.Launch(item, offset); err != nil {
		s.logger.Error("failed to launch player", "error", err, "itemID", item.ID)
		return fmt.Errorf("launch player: %w", err)
	}
	return nil
}
