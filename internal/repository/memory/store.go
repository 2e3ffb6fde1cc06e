// Package memory provides in-process implementations of the repository ports, selected with
// DATA_SOURCE=memory. All repositories created from one Store share its data and lock, so the
// (event, attendee) uniqueness of responses holds across concurrent callers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"whenandwhere/internal/domain"
)

// Store holds all entities behind a single lock.
type Store struct {
	mu        sync.RWMutex
	events    map[string]*domain.Event
	attendees map[string]*domain.Attendee
	responses map[responseKey]*domain.Response
	logs      []*domain.LogEntry
	newID     func() string
}

type responseKey struct {
	eventID    string
	attendeeID string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		events:    make(map[string]*domain.Event),
		attendees: make(map[string]*domain.Attendee),
		responses: make(map[responseKey]*domain.Response),
		newID:     uuid.NewString,
	}
}

// Events returns the EventRepository view of the store.
func (s *Store) Events() domain.EventRepository { return &eventRepository{s} }

// Attendees returns the AttendeeRepository view of the store.
func (s *Store) Attendees() domain.AttendeeRepository { return &attendeeRepository{s} }

// Responses returns the ResponseRepository view of the store.
func (s *Store) Responses() domain.ResponseRepository { return &responseRepository{s} }

// Logs returns the LogRepository view of the store.
func (s *Store) Logs() domain.LogRepository { return &logRepository{s} }

func copyEvent(e *domain.Event) *domain.Event {
	c := *e
	c.DateSlots = append([]domain.DateSlot(nil), e.DateSlots...)
	c.InvitedAttendeeIDs = append([]string{}, e.InvitedAttendeeIDs...)
	return &c
}

func copyAttendee(a *domain.Attendee) *domain.Attendee {
	c := *a
	return &c
}

func copyResponse(r *domain.Response) *domain.Response {
	c := *r
	c.AvailableSlotIDs = append([]string{}, r.AvailableSlotIDs...)
	return &c
}

type eventRepository struct{ s *Store }

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.newID()
	r.s.events[e.ID] = copyEvent(e)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyEvent(e), nil
}

// sortedEvents returns copies of all events, newest first. Callers hold the read lock.
func (r *eventRepository) sortedEvents() []*domain.Event {
	out := make([]*domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		out = append(out, copyEvent(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.sortedEvents()
	start, end := params.Window(len(all))
	return all[start:end], len(all), nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sortedEvents(), nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}

type attendeeRepository struct{ s *Store }

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = r.s.newID()
	r.s.attendees[a.ID] = copyAttendee(a)
	return nil
}

func (r *attendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.attendees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyAttendee(a), nil
}

func (r *attendeeRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Attendee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Attendee, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.s.attendees[id]; ok {
			out = append(out, copyAttendee(a))
		}
	}
	return out, nil
}

func (r *attendeeRepository) ListAll(ctx context.Context) ([]*domain.Attendee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Attendee, 0, len(r.s.attendees))
	for _, a := range r.s.attendees {
		out = append(out, copyAttendee(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *attendeeRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.s.attendees[id]; ok {
			delete(r.s.attendees, id)
			n++
		}
	}
	return n, nil
}

type responseRepository struct{ s *Store }

// Upsert inserts or overwrites under the write lock, so concurrent submissions for the same
// (event, attendee) never produce two records.
func (r *responseRepository) Upsert(ctx context.Context, resp *domain.Response) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := responseKey{resp.EventID, resp.AttendeeID}
	if existing, ok := r.s.responses[key]; ok {
		existing.AvailableSlotIDs = append([]string{}, resp.AvailableSlotIDs...)
		existing.UpdatedAt = resp.UpdatedAt
		resp.ID = existing.ID
		resp.CreatedAt = existing.CreatedAt
		return false, nil
	}
	resp.ID = r.s.newID()
	r.s.responses[key] = copyResponse(resp)
	return true, nil
}

func (r *responseRepository) GetByEventAndAttendee(ctx context.Context, eventID, attendeeID string) (*domain.Response, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	resp, ok := r.s.responses[responseKey{eventID, attendeeID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyResponse(resp), nil
}

func (r *responseRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Response, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Response, 0)
	for key, resp := range r.s.responses {
		if key.eventID == eventID {
			out = append(out, copyResponse(resp))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *responseRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for key := range r.s.responses {
		if key.eventID == eventID {
			delete(r.s.responses, key)
			n++
		}
	}
	return n, nil
}

type logRepository struct{ s *Store }

func (r *logRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = r.s.newID()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.Level = strings.ToLower(entry.Level)
	c := *entry
	r.s.logs = append(r.s.logs, &c)
	return nil
}

func (r *logRepository) ListRecent(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.LogEntry, 0, len(r.s.logs))
	for i := len(r.s.logs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		c := *r.s.logs[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *logRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.logs))
	r.s.logs = nil
	return n, nil
}
