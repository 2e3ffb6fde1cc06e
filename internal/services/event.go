package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"whenandwhere/internal/domain"
)

// maxConcurrentInvitations bounds the invitation fan-out on event creation.
const maxConcurrentInvitations = 4

type eventService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	responseRepo   domain.ResponseRepository
	notifier       domain.NotificationService
	metrics        domain.MetricsRecorder
	links          linkBuilder
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns the event lifecycle manager. appURL is the base of the links placed in emails.
func NewEventService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	responseRepo domain.ResponseRepository,
	notifier domain.NotificationService,
	metrics domain.MetricsRecorder,
	appURL string,
	timeout time.Duration,
) domain.EventService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &eventService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		responseRepo:   responseRepo,
		notifier:       notifier,
		metrics:        metrics,
		links:          newLinkBuilder(appURL),
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// CreateEvent persists one attendee per invitee, then the event with its slots and attendee
// links in a single write, then notifies invitees and the organizer.
//
// Writes are never rolled back. If the event write fails, attendees already created stay
// behind. If a notification fails, the result is returned together with a
// *domain.NotificationError. Retrying the whole call creates new attendee rows.
func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.CreateEventResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := normalizeCreateEventInput(&in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	attendees := make([]*domain.Attendee, 0, len(in.Invitees))
	attendeeIDs := make([]string, 0, len(in.Invitees))
	for _, inv := range in.Invitees {
		a := domain.NewAttendee(inv.Name, inv.Email, now)
		if err := s.attendeeRepo.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("create attendee %q: %w", inv.Name, err)
		}
		attendees = append(attendees, a)
		attendeeIDs = append(attendeeIDs, a.ID)
	}

	event := &domain.Event{
		Name:               in.Name,
		Location:           in.Location,
		OrganizerName:      in.Organizer.Name,
		OrganizerEmail:     in.Organizer.Email,
		Description:        in.Description,
		Website:            in.Website,
		Language:           in.Language,
		DateSlots:          in.DateSlots,
		InvitedAttendeeIDs: attendeeIDs,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.metrics.EventCreated()

	result := &domain.CreateEventResult{Event: event, Attendees: attendees}
	if err := s.notifyCreated(ctx, event, attendees); err != nil {
		return result, err
	}
	return result, nil
}

func (s *eventService) notifyCreated(ctx context.Context, event *domain.Event, attendees []*domain.Attendee) error {
	slots := formatSlots(event, allSlotIDs(event))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentInvitations)
	for _, a := range attendees {
		if a.Email == "" {
			continue
		}
		data := &domain.InvitationEmailData{
			Email:          a.Email,
			AttendeeName:   a.Name,
			EventName:      event.Name,
			Location:       event.Location,
			Description:    event.Description,
			Website:        event.Website,
			OrganizerName:  event.OrganizerName,
			OrganizerEmail: event.OrganizerEmail,
			Language:       event.Language,
			Slots:          slots,
			ResponseURL:    s.links.response(event.ID, a.ID),
		}
		g.Go(func() error {
			err := s.notifier.SendInvitation(gctx, data)
			s.metrics.NotificationSent(domain.NotificationInvitation, err)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return &domain.NotificationError{
			Kind:        domain.NotificationInvitation,
			EventID:     event.ID,
			AttendeeIDs: event.InvitedAttendeeIDs,
			Err:         err,
		}
	}

	invitees := make([]domain.Invitee, len(attendees))
	for i, a := range attendees {
		invitees[i] = domain.Invitee{Name: a.Name, Email: a.Email}
	}
	err := s.notifier.SendOrganizerConfirmation(ctx, &domain.OrganizerConfirmationEmailData{
		Email:       event.OrganizerEmail,
		EventName:   event.Name,
		Location:    event.Location,
		Description: event.Description,
		Website:     event.Website,
		Language:    event.Language,
		Slots:       slots,
		Attendees:   invitees,
		EventURL:    s.links.event(event.ID),
	})
	s.metrics.NotificationSent(domain.NotificationOrganizerConfirmation, err)
	if err != nil {
		return &domain.NotificationError{
			Kind:        domain.NotificationOrganizerConfirmation,
			EventID:     event.ID,
			AttendeeIDs: event.InvitedAttendeeIDs,
			Err:         err,
		}
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getEvent(ctx, eventID)
}

func (s *eventService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// ListEvents returns one page of events, newest first, with the total event count.
func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// ListAttendees returns the event's invited attendees in invitation order.
func (s *eventService) ListAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	attendees, err := s.attendeeRepo.ListByIDs(ctx, event.InvitedAttendeeIDs)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (s *eventService) GetAttendee(ctx context.Context, attendeeID string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	a, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return a, nil
}

// DeleteEvent removes the event's responses, then its attendees, then the event.
// Each step is independent; a failure part way leaves the earlier steps applied.
func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if _, err := s.responseRepo.DeleteByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("delete responses: %w", err)
	}
	if len(event.InvitedAttendeeIDs) > 0 {
		if _, err := s.attendeeRepo.DeleteByIDs(ctx, event.InvitedAttendeeIDs); err != nil {
			return fmt.Errorf("delete attendees: %w", err)
		}
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.metrics.EventDeleted()
	return nil
}
