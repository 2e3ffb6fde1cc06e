package domain

import (
	"context"
	"time"
)

// Attendee is one invited person. Each invitation creates a fresh record; records are not
// merged across events by email.
// swagger:model Attendee
type Attendee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAttendee returns a new Attendee. ID is set by the repository on create.
func NewAttendee(name, email string, createdAt time.Time) *Attendee {
	return &Attendee{
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id string) (*Attendee, error)
	// ListByIDs returns the attendees found for ids, in the order of ids. Unknown ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]*Attendee, error)
	ListAll(ctx context.Context) ([]*Attendee, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
