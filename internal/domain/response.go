package domain

import (
	"context"
	"time"
)

// Response is one attendee's declared availability for one event.
// There is at most one Response per (EventID, AttendeeID).
// swagger:model Response
type Response struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	AttendeeID       string    `json:"attendee_id"`
	AvailableSlotIDs []string  `json:"available_slot_ids"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ResponseRepository defines storage operations for responses.
type ResponseRepository interface {
	// Upsert atomically inserts the response or overwrites the available slots of the
	// existing (EventID, AttendeeID) record. created reports which happened.
	Upsert(ctx context.Context, resp *Response) (created bool, err error)
	GetByEventAndAttendee(ctx context.Context, eventID, attendeeID string) (*Response, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Response, error)
	DeleteByEventID(ctx context.Context, eventID string) (int64, error)
}

// SlotTally is the number of attendees available for one slot.
// swagger:model SlotTally
type SlotTally struct {
	Slot        DateSlot `json:"slot"`
	Count       int      `json:"count"`
	AttendeeIDs []string `json:"attendee_ids"`
}

// Availability is the aggregated popularity view of an event.
// swagger:model Availability
type Availability struct {
	EventID           string      `json:"event_id"`
	AttendeeCount     int         `json:"attendee_count"`
	ResponseCount     int         `json:"response_count"`
	ResponseRate      float64     `json:"response_rate"`
	MostPopularSlotID *string     `json:"most_popular_slot_id"`
	Slots             []SlotTally `json:"slots"`
}

// ResponseService defines operations on attendee responses.
type ResponseService interface {
	// SubmitResponse stores the attendee's availability, replacing any earlier submission.
	SubmitResponse(ctx context.Context, eventID, attendeeID string, slotIDs []string) (*Response, bool, error)
	ListResponses(ctx context.Context, eventID string) ([]*Response, error)
	GetAvailability(ctx context.Context, eventID string) (*Availability, error)
}
