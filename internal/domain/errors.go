package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories. Anything else is a dependency failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// Entity-specific errors; each matches its base sentinel with errors.Is.
var (
	ErrEventNotFound    = fmt.Errorf("event %w", ErrNotFound)
	ErrAttendeeNotFound = fmt.Errorf("attendee %w", ErrNotFound)
	ErrNotInvited       = fmt.Errorf("attendee is not invited to this event: %w", ErrForbidden)
)

// Notification kinds carried by NotificationError.
const (
	NotificationInvitation            = "invitation"
	NotificationOrganizerConfirmation = "organizer_confirmation"
	NotificationResponseReceived      = "response_received"
)

// NotificationError reports that state was durably written but a notification could not be sent.
// Nothing written before the failure is rolled back.
type NotificationError struct {
	Kind        string
	EventID     string
	AttendeeIDs []string
	ResponseID  string
	Err         error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("send %s notification for event %s: %v", e.Kind, e.EventID, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// InvalidInputf returns an error wrapping ErrInvalidInput with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
