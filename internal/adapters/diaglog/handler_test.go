package diaglog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenandwhere/internal/domain"
)

type mockLogRepo struct {
	mu      sync.Mutex
	entries []*domain.LogEntry
	err     error
}

func (m *mockLogRepo) Create(ctx context.Context, entry *domain.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	return m.entries, nil
}

func (m *mockLogRepo) DeleteAll(ctx context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

func newTestLogger(repo domain.LogRepository) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(NewHandler(text, repo, nil)), &buf
}

func TestHandler_PersistsWarnAndAbove(t *testing.T) {
	repo := &mockLogRepo{}
	logger, buf := newTestLogger(repo)

	logger.Info("request handled", "path", "/events")
	logger.Warn("slow request", "path", "/events", "ms", 1200)
	logger.Error("request failed", "err", errors.New("boom"), SourceKey, "http")

	require.Len(t, repo.entries, 2)
	warn := repo.entries[0]
	assert.Equal(t, domain.LogLevelWarn, warn.Level)
	assert.Equal(t, "slow request", warn.Message)
	assert.Equal(t, DefaultSource, warn.Source)
	assert.Equal(t, "/events", warn.Metadata["path"])
	assert.Equal(t, int64(1200), warn.Metadata["ms"])

	errEntry := repo.entries[1]
	assert.Equal(t, domain.LogLevelError, errEntry.Level)
	assert.Equal(t, "http", errEntry.Source)
	assert.Equal(t, "boom", errEntry.Metadata["err"])

	assert.Contains(t, buf.String(), "request handled")
	assert.Contains(t, buf.String(), "request failed")
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	repo := &mockLogRepo{}
	logger, _ := newTestLogger(repo)

	logger.With("request_id", "abc").WithGroup("email").Warn("send failed", "kind", "invitation")

	require.Len(t, repo.entries, 1)
	md := repo.entries[0].Metadata
	assert.Equal(t, "abc", md["request_id"])
	assert.Equal(t, "invitation", md["email.kind"])
}

func TestHandler_PersistFailureDoesNotFailLogging(t *testing.T) {
	repo := &mockLogRepo{err: errors.New("db down")}
	logger, buf := newTestLogger(repo)

	logger.Error("request failed")

	assert.Empty(t, repo.entries)
	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "failed to persist diagnostic log")
}

func TestHandler_EnabledForPersistedLevels(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	h := NewHandler(text, &mockLogRepo{}, slog.LevelWarn)

	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
}
