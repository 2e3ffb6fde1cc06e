package domain

import (
	"context"
	"time"
)

// User kinds reported by the admin users view.
const (
	UserTypeOrganizer = "organizer"
	UserTypeAttendee  = "attendee"
)

// UserSummary groups organizers or attendees by email for the admin users view.
// swagger:model UserSummary
type UserSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Type            string `json:"type"`
	EventsOrganized int    `json:"events_organized,omitempty"`
	EventsAttended  int    `json:"events_attended,omitempty"`
}

// EventDetails bundles an event with its attendees and responses.
// swagger:model EventDetails
type EventDetails struct {
	Event     *Event      `json:"event"`
	Attendees []*Attendee `json:"attendees"`
	Responses []*Response `json:"responses"`
}

// AdminService exposes administrative listing and cleanup.
type AdminService interface {
	ListEvents(ctx context.Context, params PaginationParams) ([]*EventDetails, int, error)
	DeleteEvent(ctx context.Context, eventID string) error
	ListUsers(ctx context.Context) ([]*UserSummary, error)
	ListLogs(ctx context.Context, limit int) ([]*LogEntry, error)
	ClearLogs(ctx context.Context) (int64, error)
}

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated admin.
type TokenIssuer interface {
	Issue(subject string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns its subject and roles.
type TokenVerifier interface {
	Verify(token string) (subject string, roles []string, err error)
}

// AdminAuthenticator checks admin basic-auth credentials.
type AdminAuthenticator interface {
	Authenticate(username, password string) error
}
