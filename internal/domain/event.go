package domain

import (
	"context"
	"time"
)

// Supported event languages.
const (
	LanguageEnglish = "en"
	LanguageSwedish = "sv"
)

// Layouts used by DateSlot fields.
const (
	SlotDateLayout = "2006-01-02"
	SlotTimeLayout = "15:04"
)

// DateSlot is one candidate date and time range proposed by the organizer.
// ID is unique within its event and never reused once shared with attendees.
// Empty StartTime and EndTime mean an all-day slot.
// swagger:model DateSlot
type DateSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AllDay reports whether the slot has no time range.
func (s DateSlot) AllDay() bool {
	return s.StartTime == "" && s.EndTime == ""
}

// Start returns the slot start in loc. All-day slots start at midnight.
func (s DateSlot) Start(loc *time.Location) (time.Time, error) {
	if s.StartTime == "" {
		return time.ParseInLocation(SlotDateLayout, s.Date, loc)
	}
	return time.ParseInLocation(SlotDateLayout+" "+SlotTimeLayout, s.Date+" "+s.StartTime, loc)
}

// End returns the slot end in loc. All-day slots end at the next midnight.
func (s DateSlot) End(loc *time.Location) (time.Time, error) {
	if s.EndTime == "" {
		d, err := time.ParseInLocation(SlotDateLayout, s.Date, loc)
		if err != nil {
			return time.Time{}, err
		}
		return d.AddDate(0, 0, 1), nil
	}
	return time.ParseInLocation(SlotDateLayout+" "+SlotTimeLayout, s.Date+" "+s.EndTime, loc)
}

// Organizer identifies the person who proposed the event.
type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event is a proposed meeting with ordered candidate slots and a fixed set of invited attendees.
// swagger:model Event
type Event struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	OrganizerName      string     `json:"organizer_name"`
	OrganizerEmail     string     `json:"organizer_email"`
	Description        string     `json:"description,omitempty"`
	Website            string     `json:"website,omitempty"`
	Language           string     `json:"language"`
	DateSlots          []DateSlot `json:"date_slots"`
	InvitedAttendeeIDs []string   `json:"invited_attendee_ids"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// HasAttendee reports whether attendeeID is in the invited set.
func (e *Event) HasAttendee(attendeeID string) bool {
	for _, id := range e.InvitedAttendeeIDs {
		if id == attendeeID {
			return true
		}
	}
	return false
}

// Slot returns the slot with the given id.
func (e *Event) Slot(slotID string) (DateSlot, bool) {
	for _, s := range e.DateSlots {
		if s.ID == slotID {
			return s, true
		}
	}
	return DateSlot{}, false
}

// CreateEventInput is everything the organizer supplies when proposing an event.
type CreateEventInput struct {
	Name        string
	Location    string
	Organizer   Organizer
	Description string
	Website     string
	Language    string
	DateSlots   []DateSlot
	Invitees    []Invitee
}

// Invitee is a person to invite; Email is optional.
type Invitee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateEventResult carries the identifiers written by CreateEvent.
type CreateEventResult struct {
	Event     *Event      `json:"event"`
	Attendees []*Attendee `json:"attendees"`
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	// Create stores the event with its slots and attendee links as one write.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService is the event lifecycle manager.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*CreateEventResult, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListAttendees(ctx context.Context, eventID string) ([]*Attendee, error)
	GetAttendee(ctx context.Context, attendeeID string) (*Attendee, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
