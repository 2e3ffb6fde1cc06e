package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	h "whenandwhere/internal/delivery/http/helpers"
	"whenandwhere/internal/delivery/http/middleware"
	"whenandwhere/internal/domain"
)

// AdminTokenRequest is the request body for POST /admin/token
type AdminTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l AdminTokenRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AdminTokenResponse is the response body for POST /admin/token
type AdminTokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ListAdminEventsResponse is the data payload for GET /admin/events.
type ListAdminEventsResponse struct {
	Events     []*domain.EventDetails `json:"events"`
	Pagination h.PaginationMeta       `json:"pagination"`
}

// ClearLogsResponse is the data payload for DELETE /admin/logs.
type ClearLogsResponse struct {
	Deleted int64 `json:"deleted"`
}

type AdminController struct {
	Logger        *slog.Logger
	Service       domain.AdminService
	Authenticator domain.AdminAuthenticator
	Tokens        domain.TokenIssuer
	TokenTTL      time.Duration
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService, authn domain.AdminAuthenticator, tokens domain.TokenIssuer, ttl time.Duration) *AdminController {
	return &AdminController{
		Logger:        logger,
		Service:       svc,
		Authenticator: authn,
		Tokens:        tokens,
		TokenTTL:      ttl,
	}
}

// Token godoc
// @Summary Issue an admin token
// @Description Exchanges the admin username and password for a bearer token carrying the admin role.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body AdminTokenRequest true "Admin credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type and expires_at"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /admin/token [post]
func (c *AdminController) Token(w http.ResponseWriter, r *http.Request) {
	var req AdminTokenRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Authenticator.Authenticate(req.Username, req.Password); err != nil {
		c.Logger.WarnContext(r.Context(), "admin authentication failed", "path", r.URL.Path, "scheme", "token")
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	expiresAt := time.Now().Add(c.TokenTTL).UTC()
	token, err := c.Tokens.Issue(req.Username, []string{middleware.AdminRole}, c.TokenTTL)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not issue token")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, AdminTokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}

// ListEvents godoc
// @Summary List all events
// @Description Paginated, newest first. Each event carries its attendees and responses.
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 50)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /admin/events [get]
func (c *AdminController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params, err := h.ParsePagination(r, h.MaxAdminPageSize)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, total, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListAdminEventsResponse{
		Events:     events,
		Pagination: h.NewPaginationMeta(params, total),
	})
}

// DeleteEvent godoc
// @Summary Delete an event and everything attached to it
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains deleted and event_id"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /admin/events/{eventID} [delete]
func (c *AdminController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	admin, _ := middleware.AdminFromContext(r.Context())
	c.Logger.InfoContext(r.Context(), "event deleted by admin", "event_id", eventID, "admin", admin)
	h.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Deleted: true, EventID: eventID})
}

// ListUsers godoc
// @Summary List organizers and attendees
// @Description Organizers grouped by email with the number of events they organized, then attendees grouped by email with the number of events they were invited to.
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the users"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.ListUsers(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, users)
}

// ListLogs godoc
// @Summary List diagnostic logs
// @Description Newest first. limit defaults to and is capped at 1000.
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Security BearerAuth
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} helpers.APIResponse "data contains the log entries"
// @Failure 400 {object} helpers.APIResponse "code: bad_request"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /admin/logs [get]
func (c *AdminController) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}
	entries, err := c.Service.ListLogs(r.Context(), limit)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, entries)
}

// ClearLogs godoc
// @Summary Delete all diagnostic logs
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the number of deleted entries"
// @Failure 401 {object} helpers.APIResponse "code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "code: internal_error"
// @Router /admin/logs [delete]
func (c *AdminController) ClearLogs(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.ClearLogs(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ClearLogsResponse{Deleted: n})
}
