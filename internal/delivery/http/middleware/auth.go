package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	h "whenandwhere/internal/delivery/http/helpers"
	"whenandwhere/internal/domain"
)

// AdminRole is the role an admin bearer token must carry.
const AdminRole = "admin"

type contextKey string

const adminKey contextKey = "admin"

// SetAdmin returns a context carrying the authenticated admin name.
func SetAdmin(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, adminKey, name)
}

// AdminFromContext returns the authenticated admin name from the context, if present.
func AdminFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(adminKey).(string)
	return name, ok
}

// RequireAdmin returns a wrapper that accepts either HTTP basic auth checked by authenticator
// or a bearer token checked by verifier that carries AdminRole. On failure it responds with
// 401 (403 for a valid token without the role) and does not call next.
func RequireAdmin(authenticator domain.AdminAuthenticator, verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}

			if user, pass, ok := r.BasicAuth(); ok {
				if err := authenticator.Authenticate(user, pass); err != nil {
					logger.WarnContext(r.Context(), "admin authentication failed", "path", r.URL.Path, "scheme", "basic")
					w.Header().Set("WWW-Authenticate", `Basic realm="admin"`)
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
					return
				}
				next(w, r.WithContext(SetAdmin(r.Context(), user)))
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, roles, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "admin authentication failed", "path", r.URL.Path, "scheme", "bearer")
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if !slices.Contains(roles, AdminRole) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "admin role required")
				return
			}
			next(w, r.WithContext(SetAdmin(r.Context(), subject)))
		}
	}
}
