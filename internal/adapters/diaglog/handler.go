// Package diaglog persists warning and error log records so they can be reviewed from the admin API.
package diaglog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"whenandwhere/internal/domain"
)

// SourceKey is the attribute used as the entry's Source. Records without it use DefaultSource.
const (
	SourceKey     = "source"
	DefaultSource = "server"
)

const persistTimeout = 2 * time.Second

// Handler forwards every record to next and additionally stores records at or above
// level in repo. A failed store is reported through next and never returned to the caller.
type Handler struct {
	next   slog.Handler
	repo   domain.LogRepository
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewHandler wraps next. A nil level defaults to slog.LevelWarn.
func NewHandler(next slog.Handler, repo domain.LogRepository, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelWarn
	}
	return &Handler{next: next, repo: repo, level: level}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level) || level >= h.level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.next.Enabled(ctx, r.Level) {
		err = h.next.Handle(ctx, r)
	}
	if r.Level < h.level.Level() {
		return err
	}

	entry := h.entry(r)
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if perr := h.repo.Create(pctx, entry); perr != nil {
		fallback := slog.NewRecord(time.Now(), slog.LevelError, "failed to persist diagnostic log", 0)
		fallback.AddAttrs(slog.String("message", r.Message), slog.String("err", perr.Error()))
		if h.next.Enabled(ctx, slog.LevelError) {
			_ = h.next.Handle(ctx, fallback)
		}
	}
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.next = h.next.WithAttrs(attrs)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.next = h.next.WithGroup(name)
	c.groups = append(c.groups, name)
	return c
}

func (h *Handler) clone() *Handler {
	return &Handler{
		next:   h.next,
		repo:   h.repo,
		level:  h.level,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func (h *Handler) entry(r slog.Record) *domain.LogEntry {
	entry := &domain.LogEntry{
		Timestamp: r.Time.UTC(),
		Level:     levelName(r.Level),
		Message:   r.Message,
		Source:    DefaultSource,
		Metadata:  map[string]any{},
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	for _, a := range h.attrs {
		addAttr(entry, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		addAttr(entry, prefix, a)
		return true
	})
	if len(entry.Metadata) == 0 {
		entry.Metadata = nil
	}
	return entry
}

func addAttr(entry *domain.LogEntry, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addAttr(entry, key, ga)
		}
		return
	}
	if key == SourceKey {
		entry.Source = a.Value.String()
		return
	}
	entry.Metadata[key] = attrValue(a.Value)
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	}
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return fmt.Sprint(v.Any())
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return domain.LogLevelError
	case l >= slog.LevelWarn:
		return domain.LogLevelWarn
	default:
		return domain.LogLevelInfo
	}
}
