package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"whenandwhere/internal/domain"
	"whenandwhere/internal/repository/memory"
)

const timeout = 5 * time.Second

var errSMTPDown = errors.New("smtp down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeNotifier records every notification and fails the kinds listed in failKinds.
type fakeNotifier struct {
	mu            sync.Mutex
	invitations   []*domain.InvitationEmailData
	confirmations []*domain.OrganizerConfirmationEmailData
	responses     []*domain.ResponseNotificationEmailData
	failKinds     map[string]bool
}

func (f *fakeNotifier) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKinds[domain.NotificationInvitation] {
		return errSMTPDown
	}
	f.invitations = append(f.invitations, data)
	return nil
}

func (f *fakeNotifier) SendOrganizerConfirmation(ctx context.Context, data *domain.OrganizerConfirmationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKinds[domain.NotificationOrganizerConfirmation] {
		return errSMTPDown
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}

func (f *fakeNotifier) SendResponseNotification(ctx context.Context, data *domain.ResponseNotificationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKinds[domain.NotificationResponseReceived] {
		return errSMTPDown
	}
	f.responses = append(f.responses, data)
	return nil
}

// fakeMetrics counts calls.
type fakeMetrics struct {
	mu            sync.Mutex
	created       int
	deleted       int
	submitted     map[bool]int
	notifications map[string]int
	failures      map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		submitted:     make(map[bool]int),
		notifications: make(map[string]int),
		failures:      make(map[string]int),
	}
}

func (m *fakeMetrics) EventCreated() { m.mu.Lock(); m.created++; m.mu.Unlock() }
func (m *fakeMetrics) EventDeleted() { m.mu.Lock(); m.deleted++; m.mu.Unlock() }
func (m *fakeMetrics) ResponseSubmitted(created bool) {
	m.mu.Lock()
	m.submitted[created]++
	m.mu.Unlock()
}
func (m *fakeMetrics) NotificationSent(kind string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failures[kind]++
		return
	}
	m.notifications[kind]++
}

// failingEventRepo wraps an EventRepository and fails the configured calls.
type failingEventRepo struct {
	domain.EventRepository
	createErr error
	deleteErr error
}

func (r *failingEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.EventRepository.Create(ctx, e)
}

func (r *failingEventRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.EventRepository.Delete(ctx, id)
}

// failingResponseRepo fails DeleteByEventID and Upsert when the errors are set.
type failingResponseRepo struct {
	domain.ResponseRepository
	deleteErr error
	upsertErr error
}

func (r *failingResponseRepo) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	return r.ResponseRepository.DeleteByEventID(ctx, eventID)
}

func (r *failingResponseRepo) Upsert(ctx context.Context, resp *domain.Response) (bool, error) {
	if r.upsertErr != nil {
		return false, r.upsertErr
	}
	return r.ResponseRepository.Upsert(ctx, resp)
}

// testEnv wires the real services over one in-memory store.
type testEnv struct {
	store     *memory.Store
	notifier  *fakeNotifier
	metrics   *fakeMetrics
	events    domain.EventService
	responses domain.ResponseService
	admin     domain.AdminService
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	env := &testEnv{
		store:    store,
		notifier: &fakeNotifier{failKinds: map[string]bool{}},
		metrics:  newFakeMetrics(),
	}
	env.events = NewEventService(store.Events(), store.Attendees(), store.Responses(), env.notifier, env.metrics, "https://app.example.com/", timeout)
	env.responses = NewResponseService(store.Events(), store.Attendees(), store.Responses(), env.notifier, env.metrics, "https://app.example.com", timeout)
	env.admin = NewAdminService(env.events, store.Events(), store.Attendees(), store.Responses(), store.Logs(), timeout)
	return env
}

func sprintPlanningInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Name:      "Sprint Planning",
		Location:  "Room 4",
		Organizer: domain.Organizer{Name: "Dana", Email: "dana@example.com"},
		DateSlots: []domain.DateSlot{
			{ID: "S1", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"},
			{ID: "S2", Date: "2025-03-11", StartTime: "14:00", EndTime: "15:00"},
		},
		Invitees: []domain.Invitee{
			{Name: "Ann", Email: "ann@example.com"},
			{Name: "Bo", Email: "bo@example.com"},
			{Name: "Cy", Email: "cy@example.com"},
			{Name: "Di"},
		},
	}
}
