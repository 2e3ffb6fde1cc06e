package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"whenandwhere/internal/domain"
)

// WriteServiceError maps a service error to its HTTP status and writes it.
// Unexpected errors are logged and answered with 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var notifyErr *domain.NotificationError
	switch {
	case errors.As(err, &notifyErr):
		logger.WarnContext(r.Context(), "notification failed", "path", r.URL.Path, "method", r.Method,
			"kind", notifyErr.Kind, "event_id", notifyErr.EventID, "err", notifyErr.Err)
		WriteJSONError(w, http.StatusBadGateway, ErrCodeNotificationFailed, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// WriteNotificationError answers a partial failure: state was written, so data is returned
// alongside a 502. It reports false when err is not a notification failure.
func WriteNotificationError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, data any) bool {
	var notifyErr *domain.NotificationError
	if !errors.As(err, &notifyErr) {
		return false
	}
	logger.WarnContext(r.Context(), "notification failed", "path", r.URL.Path, "method", r.Method,
		"kind", notifyErr.Kind, "event_id", notifyErr.EventID, "err", notifyErr.Err)
	WriteJSONErrorWithData(w, http.StatusBadGateway, ErrCodeNotificationFailed, err.Error(), data)
	return true
}
