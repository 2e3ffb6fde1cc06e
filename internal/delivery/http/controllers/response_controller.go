package controllers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"whenandwhere/internal/adapters/calendar"
	"whenandwhere/internal/delivery/http/helpers"
	"whenandwhere/internal/domain"
)

// SubmitResponseRequest is the request body for POST /events/{eventID}/responses.
type SubmitResponseRequest struct {
	AttendeeID       string   `json:"attendee_id"`
	AvailableSlotIDs []string `json:"available_slot_ids"`
}

// Validate implements Validator. An empty slot list is allowed and means "no slot works".
func (s SubmitResponseRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.AttendeeID) == "" {
		errs = append(errs, "attendee_id is required")
	} else if !uuidRegex.MatchString(s.AttendeeID) {
		errs = append(errs, "attendee_id must be a UUID")
	}
	if s.AvailableSlotIDs == nil {
		errs = append(errs, "available_slot_ids is required")
	}
	return errs
}

// SubmitResponseSuccessResponse is the success response envelope for POST /events/{eventID}/responses.
type SubmitResponseSuccessResponse struct {
	Data *domain.Response `json:"data"`
}

// ListResponsesSuccessResponse is the success response envelope for GET /events/{eventID}/responses (200).
type ListResponsesSuccessResponse struct {
	Data []*domain.Response `json:"data"`
}

// AvailabilitySuccessResponse is the success response envelope for GET /events/{eventID}/availability (200).
type AvailabilitySuccessResponse struct {
	Data *domain.Availability `json:"data"`
}

type ResponseController struct {
	Logger  *slog.Logger
	Service domain.ResponseService
	Events  domain.EventService
	now     func() time.Time
}

func NewResponseController(logger *slog.Logger, svc domain.ResponseService, events domain.EventService) *ResponseController {
	return &ResponseController{
		Logger:  logger,
		Service: svc,
		Events:  events,
		now:     time.Now,
	}
}

// SubmitResponse godoc
// @Summary Submit or replace an attendee's availability
// @Description Stores the attendee's available slots for the event. A second submission replaces the first. Returns 201 when a response was created, 200 when it was replaced. Every slot id must belong to the event.
// @Tags responses
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body SubmitResponseRequest true "Attendee and available slot ids"
// @Success 200 {object} controllers.SubmitResponseSuccessResponse "Existing response replaced"
// @Success 201 {object} controllers.SubmitResponseSuccessResponse "New response created"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 403 {object} helpers.APIResponse "code: forbidden (attendee not invited)"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 409 {object} helpers.APIResponse "code: conflict"
// @Failure 502 {object} controllers.SubmitResponseSuccessResponse "code: notification_failed; data contains the stored response"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID}/responses [post]
func (c *ResponseController) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req SubmitResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	resp, created, err := c.Service.SubmitResponse(r.Context(), eventID, req.AttendeeID, req.AvailableSlotIDs)
	if err != nil {
		if resp != nil && helpers.WriteNotificationError(w, r, c.Logger, err, resp) {
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, resp)
}

// ListResponses godoc
// @Summary List an event's responses
// @Tags responses
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListResponsesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID}/responses [get]
func (c *ResponseController) ListResponses(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	responses, err := c.Service.ListResponses(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, responses)
}

// GetAvailability godoc
// @Summary Get the availability summary of an event
// @Description Counts, per slot, how many attendees are available, and names the most popular slot (highest count, then earliest date, then earliest start, then slot id). most_popular_slot_id is null when nobody is available for any slot.
// @Tags responses
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AvailabilitySuccessResponse
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *ResponseController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	availability, err := c.Service.GetAvailability(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// GetCalendar godoc
// @Summary Download an event as iCalendar
// @Description Returns a text/calendar document with one VEVENT per candidate slot, or only the slot given by the slot query parameter.
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "Event ID (UUID)"
// @Param slot query string false "Only export this slot"
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /events/{eventID}/calendar.ics [get]
func (c *ResponseController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var buf bytes.Buffer
	if err := calendar.Encode(&buf, event, r.URL.Query().Get("slot"), c.now()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="event-%s.ics"`, event.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
