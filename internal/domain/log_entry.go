package domain

import (
	"context"
	"time"
)

// Diagnostic log levels.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogEntry is a persisted diagnostic record.
// swagger:model LogEntry
type LogEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Source    string         `json:"source"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// LogRepository stores diagnostic log entries.
type LogRepository interface {
	Create(ctx context.Context, entry *LogEntry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*LogEntry, error)
	DeleteAll(ctx context.Context) (int64, error)
}
