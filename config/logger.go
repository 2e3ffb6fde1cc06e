package config

import (
	"io"
	"log/slog"
)

// ParseLevel maps LOG_LEVEL values (debug, info, warn, error) to a slog.Level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler returns the base slog handler for cfg writing to w.
// Production uses JSON handler; otherwise text handler.
func NewHandler(cfg *Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	if cfg.Environment == "production" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewLogger returns a slog.Logger over NewHandler.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	return slog.New(NewHandler(cfg, w))
}
