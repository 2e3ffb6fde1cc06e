package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"whenandwhere/internal/domain"
)

type responseService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	responseRepo   domain.ResponseRepository
	notifier       domain.NotificationService
	metrics        domain.MetricsRecorder
	links          linkBuilder
	contextTimeout time.Duration
	now            func() time.Time
}

// NewResponseService returns the ResponseService backed by the given repositories.
func NewResponseService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	responseRepo domain.ResponseRepository,
	notifier domain.NotificationService,
	metrics domain.MetricsRecorder,
	appURL string,
	timeout time.Duration,
) domain.ResponseService {
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	return &responseService{
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

// SubmitResponse replaces the attendee's availability for the event with slotIDs (full
// overwrite, never a merge). The bool result is true when a new record was created.
// Uniqueness of (event, attendee) is enforced by the repository's atomic upsert.
func (s *responseService) SubmitResponse(ctx context.Context, eventID, attendeeID string, slotIDs []string) (*domain.Response, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrEventNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrAttendeeNotFound
		}
		return nil, false, fmt.Errorf("get attendee: %w", err)
	}
	if !event.HasAttendee(attendee.ID) {
		return nil, false, domain.ErrNotInvited
	}
	selected, err := normalizeSlotSelection(event, slotIDs)
	if err != nil {
		return nil, false, err
	}

	now := s.now().UTC()
	resp := &domain.Response{
		EventID:          event.ID,
		AttendeeID:       attendee.ID,
		AvailableSlotIDs: selected,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	created, err := s.responseRepo.Upsert(ctx, resp)
	if err != nil {
		return nil, false, fmt.Errorf("upsert response: %w", err)
	}
	s.metrics.ResponseSubmitted(created)

	err = s.notifier.SendResponseNotification(ctx, &domain.ResponseNotificationEmailData{
		Email:        event.OrganizerEmail,
		EventName:    event.Name,
		AttendeeName: attendee.Name,
		Language:     event.Language,
		Slots:        formatSlots(event, resp.AvailableSlotIDs),
		EventURL:     s.links.event(event.ID),
	})
	s.metrics.NotificationSent(domain.NotificationResponseReceived, err)
	if err != nil {
		return resp, created, &domain.NotificationError{
			Kind:        domain.NotificationResponseReceived,
			EventID:     event.ID,
			AttendeeIDs: []string{attendee.ID},
			ResponseID:  resp.ID,
			Err:         err,
		}
	}
	return resp, created, nil
}

func (s *responseService) ListResponses(ctx context.Context, eventID string) ([]*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	_, responses, err := s.eventWithResponses(ctx, eventID)
	return responses, err
}

// GetAvailability recomputes the popularity view from all stored responses.
func (s *responseService) GetAvailability(ctx context.Context, eventID string) (*domain.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, responses, err := s.eventWithResponses(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return Summarize(event, responses), nil
}

func (s *responseService) eventWithResponses(ctx context.Context, eventID string) (*domain.Event, []*domain.Response, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrEventNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	responses, err := s.responseRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list responses: %w", err)
	}
	if responses == nil {
		responses = []*domain.Response{}
	}
	return event, responses, nil
}
