package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/snips/internal/domain"
)

type fakeLauncher struct {
	item   domain.MediaItem
	offset time.Duration
	calls  int
	err    error
}

func (l *fakeLauncher) Launch(item domain.MediaItem, offset time.Duration) error {
	l.calls++
	l.item = item
	l.offset = offset
	return l.err
}

func TestPlayFrom(t *testing.T) {
	l := &fakeLauncher{}
	s := NewPlaybackService(l, testLogger())

	item := domain.MediaItem{ID: "a", VideoURL: "https://cdn/a.m3u8"}
	if err := s.PlayFrom(item, 7*time.Second); err != nil {
		t.Fatalf("PlayFrom failed: %v", err)
	}
	if l.calls != 1 || l.item.ID != "a" || l.offset != 7*time.Second {
		t.Errorf("unexpected launch: %+v", l)
	}
}

func TestPlayWithoutVideo(t *testing.T) {
	l := &fakeLauncher{}
	s := NewPlaybackService(l, testLogger())

	if err := s.Play(domain.MediaItem{ID: "a"}); !errors.Is(err, domain.ErrNoVideo) {
		t.Errorf("expected ErrNoVideo, got %v", err)
	}
	if l.calls != 0 {
		t.Error("launcher should not be called")
	}
}

func TestPlayLaunchError(t *testing.T) {
	cause := errors.New("no player")
	s := NewPlaybackService(&fakeLauncher{err: cause}, testLogger())

	err := s.Play(domain.MediaItem{ID: "a", VideoURL: "https://cdn/a.m3u8"})
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped launch error, got %v", err)
	}
}
