package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"whenandwhere/internal/adapters/auth"
	"whenandwhere/internal/adapters/email"
	"whenandwhere/internal/adapters/metrics"
	"whenandwhere/internal/delivery/http/controllers"
	"whenandwhere/internal/domain"
	"whenandwhere/internal/repository/memory"
	"whenandwhere/internal/services"
)

// recordingMailer captures sent mail and fails for addresses in failFor.
type recordingMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

type testServer struct {
	handler http.Handler
	store   *memory.Store
	mailer  *recordingMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	mailer := &recordingMailer{failFor: map[string]bool{}}
	renderer, err := email.NewTemplateRenderer()
	require.NoError(t, err)
	notifier := services.NewEmailService(mailer, renderer, logger)
	m := metrics.New()

	eventSvc := services.NewEventService(store.Events(), store.Attendees(), store.Responses(), notifier, m, "https://app.test", 5*time.Second)
	responseSvc := services.NewResponseService(store.Events(), store.Attendees(), store.Responses(), notifier, m, "https://app.test", 5*time.Second)
	adminSvc := services.NewAdminService(eventSvc, store.Events(), store.Attendees(), store.Responses(), store.Logs(), 5*time.Second)

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	authn := auth.NewAdminAuthenticator("admin", hash, hasher)

	handler := NewRouter(RouterConfig{
		Logger:             logger,
		EventController:    controllers.NewEventController(logger, eventSvc),
		ResponseController: controllers.NewResponseController(logger, responseSvc, eventSvc),
		AdminController:    controllers.NewAdminController(logger, adminSvc, authn, auth.NewJWTIssuer("test-secret"), time.Hour),
		AdminAuth:          authn,
		TokenVerifier:      auth.NewJWTVerifier("test-secret"),
		Metrics:            m,
	})
	return &testServer{handler: handler, store: store, mailer: mailer}
}

func (s *testServer) do(t *testing.T, method, path, body string, setup ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for _, f := range setup {
		f(req)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: dest}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
}

const sprintPlanning = `{
	"name": "Sprint Planning",
	"location": "Room 4",
	"organizer": {"name": "Olga", "email": "olga@example.com"},
	"date_slots": [
		{"id": "S1", "date": "2025-03-10", "start_time": "09:00", "end_time": "10:00"},
		{"id": "S2", "date": "2025-03-11", "start_time": "09:00", "end_time": "10:00"}
	],
	"invitees": [
		{"name": "Alice", "email": "alice@example.com"},
		{"name": "Bob", "email": "bob@example.com"}
	]
}`

func createSprintPlanning(t *testing.T, s *testServer) *domain.CreateEventResult {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/events", sprintPlanning)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var result domain.CreateEventResult
	decodeData(t, rr, &result)
	require.Len(t, result.Attendees, 2)
	return &result
}

func submit(t *testing.T, s *testServer, eventID, attendeeID string, slots ...string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]any{"attendee_id": attendeeID, "available_slot_ids": slots})
	require.NoError(t, err)
	return s.do(t, http.MethodPost, "/events/"+eventID+"/responses", string(body))
}

func TestRouter_SprintPlanningScenario(t *testing.T) {
	s := newTestServer(t)
	created := createSprintPlanning(t, s)
	eventID := created.Event.ID
	alice, bob := created.Attendees[0], created.Attendees[1]

	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com", "olga@example.com"}, s.mailer.sent)

	require.Equal(t, http.StatusCreated, submit(t, s, eventID, alice.ID, "S1").Code)
	require.Equal(t, http.StatusCreated, submit(t, s, eventID, bob.ID, "S1", "S2").Code)

	rr := s.do(t, http.MethodGet, "/events/"+eventID+"/availability", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var availability domain.Availability
	decodeData(t, rr, &availability)
	require.Len(t, availability.Slots, 2)
	assert.Equal(t, 2, availability.Slots[0].Count)
	assert.Equal(t, 1, availability.Slots[1].Count)
	require.NotNil(t, availability.MostPopularSlotID)
	assert.Equal(t, "S1", *availability.MostPopularSlotID)
	assert.Equal(t, 100.0, availability.ResponseRate)
}

func TestRouter_ResubmissionOverwrites(t *testing.T) {
	s := newTestServer(t)
	created := createSprintPlanning(t, s)
	eventID, alice := created.Event.ID, created.Attendees[0]

	require.Equal(t, http.StatusCreated, submit(t, s, eventID, alice.ID, "S1", "S2").Code)
	require.Equal(t, http.StatusOK, submit(t, s, eventID, alice.ID, "S2").Code)

	rr := s.do(t, http.MethodGet, "/events/"+eventID+"/responses", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var responses []*domain.Response
	decodeData(t, rr, &responses)
	require.Len(t, responses, 1)
	assert.Equal(t, []string{"S2"}, responses[0].AvailableSlotIDs)
}

func TestRouter_NotInvitedIsForbidden(t *testing.T) {
	s := newTestServer(t)
	first := createSprintPlanning(t, s)
	second := createSprintPlanning(t, s)

	rr := submit(t, s, first.Event.ID, second.Attendees[0].ID, "S1")
	require.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(t, http.MethodGet, "/events/"+first.Event.ID+"/responses", "")
	var responses []*domain.Response
	decodeData(t, rr, &responses)
	assert.Empty(t, responses)
}

func TestRouter_UnknownSlotRejected(t *testing.T) {
	s := newTestServer(t)
	created := createSprintPlanning(t, s)

	rr := submit(t, s, created.Event.ID, created.Attendees[0].ID, "S9")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_ListEvents(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/events", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var page controllers.ListEventsResponse
	decodeData(t, rr, &page)
	assert.Empty(t, page.Events)
	assert.Equal(t, 0, page.Pagination.Total)

	first := createSprintPlanning(t, s)
	second := createSprintPlanning(t, s)

	rr = s.do(t, http.MethodGet, "/events?page_size=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decodeData(t, rr, &page)
	require.Len(t, page.Events, 1)
	assert.Contains(t, []string{first.Event.ID, second.Event.ID}, page.Events[0].ID)
	assert.Equal(t, 2, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/events?page=0", "").Code)
}

func TestRouter_DeleteCascades(t *testing.T) {
	s := newTestServer(t)
	created := createSprintPlanning(t, s)
	eventID, alice := created.Event.ID, created.Attendees[0]
	require.Equal(t, http.StatusCreated, submit(t, s, eventID, alice.ID, "S1").Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/events/"+eventID, "").Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/events/"+eventID, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/attendees/"+alice.ID, "").Code)
	responses, err := s.store.Responses().ListByEventID(context.Background(), eventID)
	require.NoError(t, err)
	assert.Empty(t, responses)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/events/"+eventID, "").Code)
}

func TestRouter_NotificationFailureStillReturnsEvent(t *testing.T) {
	s := newTestServer(t)
	s.mailer.failFor["bob@example.com"] = true

	rr := s.do(t, http.MethodPost, "/events", sprintPlanning)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	var envelope struct {
		Data *domain.CreateEventResult `json:"data"`
		Code string                    `json:"code"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	assert.Equal(t, "notification_failed", envelope.Code)
	require.NotNil(t, envelope.Data)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/events/"+envelope.Data.Event.ID, "").Code)
}

func TestRouter_AdminAccess(t *testing.T) {
	s := newTestServer(t)
	createSprintPlanning(t, s)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/admin/events", "").Code)

	basic := func(r *http.Request) { r.SetBasicAuth("admin", "s3cret") }
	rr := s.do(t, http.MethodGet, "/admin/events", "", basic)
	require.Equal(t, http.StatusOK, rr.Code)
	var page controllers.ListAdminEventsResponse
	decodeData(t, rr, &page)
	require.Len(t, page.Events, 1)
	assert.Len(t, page.Events[0].Attendees, 2)
	assert.Equal(t, 1, page.Pagination.Total)

	rr = s.do(t, http.MethodPost, "/admin/token", `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var token controllers.AdminTokenResponse
	decodeData(t, rr, &token)
	bearer := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token.Token) }

	rr = s.do(t, http.MethodGet, "/admin/users", "", bearer)
	require.Equal(t, http.StatusOK, rr.Code)
	var users []*domain.UserSummary
	decodeData(t, rr, &users)
	require.Len(t, users, 3)
	assert.Equal(t, domain.UserTypeOrganizer, users[0].Type)
}

func TestRouter_ProbesAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rr.Body.String())

	createSprintPlanning(t, s)
	rr = s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "whenandwhere_events_created_total 1"))
}
