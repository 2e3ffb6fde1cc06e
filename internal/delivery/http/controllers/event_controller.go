package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"whenandwhere/internal/delivery/http/helpers"
	"whenandwhere/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// pathID reads a UUID path value. On a missing or malformed value it writes 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id, true
}

// OrganizerRequest identifies the organizer in CreateEventRequest.
type OrganizerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DateSlotRequest is one candidate slot. ID is optional; a uuid is generated when empty.
type DateSlotRequest struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// InviteeRequest is one person to invite. Email is optional.
type InviteeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string            `json:"name"`
	Location    string            `json:"location"`
	Organizer   OrganizerRequest  `json:"organizer"`
	Description string            `json:"description"`
	Website     string            `json:"website"`
	Language    string            `json:"language"`
	DateSlots   []DateSlotRequest `json:"date_slots"`
	Invitees    []InviteeRequest  `json:"invitees"`
}

// Validate implements Validator. Format rules are checked again by the service.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if strings.TrimSpace(c.Organizer.Name) == "" {
		errs = append(errs, "organizer.name is required")
	}
	if strings.TrimSpace(c.Organizer.Email) == "" {
		errs = append(errs, "organizer.email is required")
	}
	if len(c.DateSlots) == 0 {
		errs = append(errs, "at least one date slot is required")
	}
	return errs
}

func (c CreateEventRequest) toInput() domain.CreateEventInput {
	in := domain.CreateEventInput{
		Name:        c.Name,
		Location:    c.Location,
		Organizer:   domain.Organizer{Name: c.Organizer.Name, Email: c.Organizer.Email},
		Description: c.Description,
		Website:     c.Website,
		Language:    c.Language,
		DateSlots:   make([]domain.DateSlot, len(c.DateSlots)),
		Invitees:    make([]domain.Invitee, len(c.Invitees)),
	}
	for i, s := range c.DateSlots {
		in.DateSlots[i] = domain.DateSlot{ID: s.ID, Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	for i, inv := range c.Invitees {
		in.Invitees[i] = domain.Invitee{Name: inv.Name, Email: inv.Email}
	}
	return in
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data *domain.CreateEventResult `json:"data"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data *domain.Event `json:"data"`
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID}.
type DeleteEventResponse struct {
	Deleted bool   `json:"deleted"`
	EventID string `json:"event_id"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Propose a new event
// @Description Creates one attendee per invitee, then the event with its candidate date slots, then emails every invitee with an address and the organizer. When an email fails the written event is still returned, with status 502.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event, organizer, slots and invitees"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the event and its attendees"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 502 {object} controllers.CreateEventSuccessResponse "code: notification_failed; data contains the written event"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.CreateEvent(r.Context(), req.toInput())
	if err != nil {
		if result != nil && helpers.WriteNotificationError(w, r, c.Logger, err, result) {
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEvents godoc
// @Summary List events
// @Description Paginated, newest first. Attendees and responses are not embedded; see the admin listing for that.
// @Tags events
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params, err := helpers.ParsePagination(r, helpers.MaxEventPageSize)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event's responses, then its attendees, then the event. Steps are not rolled back on failure.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains deleted and event_id"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Deleted: true, EventID: eventID})
}

// ListAttendeesSuccessResponse is the success response envelope for GET /events/{eventID}/attendees (200).
type ListAttendeesSuccessResponse struct {
	Data []*domain.Attendee `json:"data"`
}

// ListAttendees godoc
// @Summary List an event's attendees
// @Description Returns the invited attendees in invitation order.
// @Tags attendees
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListAttendeesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *EventController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	attendees, err := c.Service.ListAttendees(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// GetAttendee godoc
// @Summary Get an attendee
// @Tags attendees
// @Produce json
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the attendee"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /attendees/{attendeeID} [get]
func (c *EventController) GetAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := pathID(w, r, "attendeeID")
	if !ok {
		return
	}
	attendee, err := c.Service.GetAttendee(r.Context(), attendeeID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendee)
}
