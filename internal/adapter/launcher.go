package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/snips/internal/domain"
)

// Launcher hands a video off to an external player
type Launcher struct {
	command   string   // configured player command, empty for auto-detection
	args      []string // additional arguments for the player
	startFlag string   // offset flag prefix, e.g., "--start=" or "-ss "
	logger    *slog.Logger

	// start runs the assembled command; replaced in tests
	start func(cmd *exec.Cmd) error
}

// playerConfig defines how a known player accepts a start offset
type playerConfig struct {
	offsetFlag string
	platforms  []string // GOOS values the player is tried on
}

// players registry - single source of truth for known players
var players = map[string]playerConfig{
	"mpv":       {offsetFlag: "--start=", platforms: []string{"darwin", "linux", "windows"}},
	"vlc":       {offsetFlag: "--start-time=", platforms: []string{"darwin", "linux", "windows"}},
	"celluloid": {offsetFlag: "--mpv-start=", platforms: []string{"linux"}},
	"haruna":    {offsetFlag: "--mpv-start=", platforms: []string{"linux"}},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"vlc", "mpv"},
}

// NewLauncher creates a Launcher, auto-detecting the offset flag for known players
func NewLauncher(cfg PlayerConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	resolvedFlag := cfg.StartFlag
	if resolvedFlag == "" && cfg.Command != "" {
		if p, ok := players[playerName(cfg.Command)]; ok {
			resolvedFlag = p.offsetFlag
			logger.Debug("auto-detected player offset flag", "player", cfg.Command, "flag", resolvedFlag)
		}
	}

	return &Launcher{
		command:   cfg.Command,
		args:      cfg.Args,
		startFlag: resolvedFlag,
		logger:    logger,
		start:     func(cmd *exec.Cmd) error { return cmd.Start() },
	}
}

// playerName normalizes a command path to a registry key ("/usr/bin/MPV.exe" -> "mpv")
func playerName(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// offsetArgs renders the start offset for a flag.
// Flags ending in a space ("-ss ") take the value as a separate argument.
func offsetArgs(flag string, offset time.Duration) []string {
	if offset <= 0 || flag == "" {
		return nil
	}
	secs := fmt.Sprintf("%.0f", offset.Seconds())
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), secs}
	}
	return []string{flag + secs}
}

// Launch opens the item's video in the configured player, a detected
// candidate, or the system default handler, in that order.
func (l *Launcher) Launch(item domain.MediaItem, startOffset time.Duration) error {
	if !item.HasVideo() {
		return domain.ErrNoVideo
	}

	if l.command != "" {
		if startOffset > 0 && l.startFlag == "" {
			l.logger.Warn("cannot set start offset - unknown player, configure start_flag in config",
				"command", l.command, "offset", startOffset)
		}
		args := append(append([]string{}, l.args...), offsetArgs(l.startFlag, startOffset)...)
		args = append(args, item.VideoURL)
		l.logger.Info("launching player", "command", l.command, "args", args, "itemID", item.ID)
		return l.start(exec.Command(l.command, args...))
	}

	if name, err := l.detectAndLaunch(item.VideoURL, startOffset); err == nil {
		l.logger.Info("launched with detected player", "player", name, "itemID", item.ID)
		return nil
	}

	l.logger.Info("no candidate players found, using system default", "itemID", item.ID)
	return l.start(defaultOpenCommand(item.VideoURL))
}

// detectAndLaunch tries candidate players in order.
// Returns the player name that succeeded.
func (l *Launcher) detectAndLaunch(url string, startOffset time.Duration) (string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		p := players[name]
		if !supports(p, runtime.GOOS) {
			continue
		}
		path, err := exec.LookPath(name)
		if err != nil {
			l.logger.Debug("player not in PATH", "player", name)
			continue
		}
		args := append(offsetArgs(p.offsetFlag, startOffset), url)
		if err := l.start(exec.Command(path, args...)); err != nil {
			l.logger.Debug("player failed to start", "player", name, "error", err)
			continue
		}
		return name, nil
	}

	return "", fmt.Errorf("no candidate players found")
}

func supports(p playerConfig, goos string) bool {
	for _, platform := range p.platforms {
		if platform == goos {
			return true
		}
	}
	return false
}

// defaultOpenCommand opens the URL using the system default handler
func defaultOpenCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
