package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"whenandwhere/internal/delivery/http/controllers"
	"whenandwhere/internal/delivery/http/helpers"
	"whenandwhere/internal/delivery/http/middleware"
	"whenandwhere/internal/domain"
)

// Instrumentation wraps the whole handler chain and serves the metrics endpoint.
type Instrumentation interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Logger             *slog.Logger
	EventController    *controllers.EventController
	ResponseController *controllers.ResponseController
	AdminController    *controllers.AdminController
	AdminAuth          domain.AdminAuthenticator
	TokenVerifier      domain.TokenVerifier
	Metrics            Instrumentation
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it in
// the middleware chain metrics, logging, CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdmin(cfg.AdminAuth, cfg.TokenVerifier, cfg.Logger)

	// Events
	mux.HandleFunc("GET /events", cfg.EventController.ListEvents)
	mux.HandleFunc("POST /events", cfg.EventController.CreateEvent)
	mux.HandleFunc("GET /events/{eventID}", cfg.EventController.GetEvent)
	mux.HandleFunc("DELETE /events/{eventID}", cfg.EventController.DeleteEvent)
	mux.HandleFunc("GET /events/{eventID}/attendees", cfg.EventController.ListAttendees)
	mux.HandleFunc("GET /events/{eventID}/calendar.ics", cfg.ResponseController.GetCalendar)
	mux.HandleFunc("GET /attendees/{attendeeID}", cfg.EventController.GetAttendee)

	// Responses
	mux.HandleFunc("GET /events/{eventID}/responses", cfg.ResponseController.ListResponses)
	mux.HandleFunc("POST /events/{eventID}/responses", cfg.ResponseController.SubmitResponse)
	mux.HandleFunc("GET /events/{eventID}/availability", cfg.ResponseController.GetAvailability)

	// Admin
	mux.HandleFunc("POST /admin/token", cfg.AdminController.Token)
	mux.HandleFunc("GET /admin/events", requireAdmin(cfg.AdminController.ListEvents))
	mux.HandleFunc("DELETE /admin/events/{eventID}", requireAdmin(cfg.AdminController.DeleteEvent))
	mux.HandleFunc("GET /admin/users", requireAdmin(cfg.AdminController.ListUsers))
	mux.HandleFunc("GET /admin/logs", requireAdmin(cfg.AdminController.ListLogs))
	mux.HandleFunc("DELETE /admin/logs", requireAdmin(cfg.AdminController.ClearLogs))

	// Probes, metrics, docs
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = middleware.CORS(cfg.CORSAllowedOrigins, mux)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	if cfg.Metrics != nil {
		handler = cfg.Metrics.Middleware(handler)
	}
	return handler
}
