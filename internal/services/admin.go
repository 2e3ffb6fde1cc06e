package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whenandwhere/internal/domain"
)

// MaxLogEntries caps the number of diagnostic log entries returned in one listing.
const MaxLogEntries = 1000

type adminService struct {
	events         domain.EventService
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	responseRepo   domain.ResponseRepository
	logRepo        domain.LogRepository
	contextTimeout time.Duration
}

// NewAdminService returns the AdminService. Event deletion is delegated to events so the
// admin panel and the public API share one cascade.
func NewAdminService(
	events domain.EventService,
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	responseRepo domain.ResponseRepository,
	logRepo domain.LogRepository,
	timeout time.Duration,
) domain.AdminService {
	return &adminService{
		events:         events,
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		responseRepo:   responseRepo,
		logRepo:        logRepo,
		contextTimeout: timeout,
	}
}

// ListEvents returns one page of events, newest first, each with its attendees and responses.
func (s *adminService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.EventDetails, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	// One attendee and one response query per event; pages are small.
	out := make([]*domain.EventDetails, 0, len(events))
	for _, ev := range events {
		attendees, err := s.attendeeRepo.ListByIDs(ctx, ev.InvitedAttendeeIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("list attendees for event %s: %w", ev.ID, err)
		}
		responses, err := s.responseRepo.ListByEventID(ctx, ev.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("list responses for event %s: %w", ev.ID, err)
		}
		if attendees == nil {
			attendees = []*domain.Attendee{}
		}
		if responses == nil {
			responses = []*domain.Response{}
		}
		out = append(out, &domain.EventDetails{Event: ev, Attendees: attendees, Responses: responses})
	}
	return out, total, nil
}

func (s *adminService) DeleteEvent(ctx context.Context, eventID string) error {
	return s.events.DeleteEvent(ctx, eventID)
}

// ListUsers groups organizers (by event organizer email) and attendees (by attendee email)
// and counts their events. Organizers come first, each group in order of first appearance.
// Attendees without an email are listed individually.
func (s *adminService) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	attendees, err := s.attendeeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}

	users := make([]*domain.UserSummary, 0)
	organizers := make(map[string]*domain.UserSummary)
	for _, ev := range events {
		key := strings.ToLower(ev.OrganizerEmail)
		if u, ok := organizers[key]; ok {
			u.EventsOrganized++
			continue
		}
		u := &domain.UserSummary{
			ID:              ev.OrganizerEmail,
			Name:            ev.OrganizerName,
			Email:           ev.OrganizerEmail,
			Type:            domain.UserTypeOrganizer,
			EventsOrganized: 1,
		}
		organizers[key] = u
		users = append(users, u)
	}

	byEmail := make(map[string]*domain.UserSummary)
	for _, a := range attendees {
		key := strings.ToLower(a.Email)
		if key != "" {
			if u, ok := byEmail[key]; ok {
				u.EventsAttended++
				continue
			}
		}
		u := &domain.UserSummary{
			ID:             a.ID,
			Name:           a.Name,
			Email:          a.Email,
			Type:           domain.UserTypeAttendee,
			EventsAttended: 1,
		}
		if key != "" {
			byEmail[key] = u
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *adminService) ListLogs(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 || limit > MaxLogEntries {
		limit = MaxLogEntries
	}
	entries, err := s.logRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	if entries == nil {
		entries = []*domain.LogEntry{}
	}
	return entries, nil
}

func (s *adminService) ClearLogs(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.logRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete logs: %w", err)
	}
	return n, nil
}
