package server

import (
	"log/slog"
	"time"

	"github.com/vearutop/tritone"
)

// Config holds the HTTP server configuration.
type Config struct {
	Addr string
	// PresetsFile is an optional YAML presets file, reloaded on change.
	PresetsFile    string
	MaxUploadBytes int64
	// MaxWidth caps the working width of uploaded images.
	MaxWidth      int
	Interpolation tritone.Interpolation
	SessionTTL    time.Duration
	MaxSessions   int
	// WatchDebounce delays preset reloads after file events.
	WatchDebounce time.Duration
	Logger        *slog.Logger
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 32 << 20
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = 1200
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 30 * time.Minute
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 64
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = 500 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
