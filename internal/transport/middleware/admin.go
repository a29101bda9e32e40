package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/session"
	"github.com/heartmarshall/serenity-backend/pkg/ctxutil"
)

type adminGate interface {
	RequireAdmin(ctx context.Context) (session.Session, error)
}

// RequireAdmin admits only callers whose profile carries the admin role and
// marks their context as admin. Role is resolved on every request, so a
// demotion takes effect immediately. A signed-in non-admin is signed out by
// the gate and receives 403.
func RequireAdmin(gate adminGate, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := gate.RequireAdmin(r.Context())
			switch {
			case err == nil:
				ctx := ctxutil.WithAdmin(r.Context(), true)
				next.ServeHTTP(w, r.WithContext(ctx))
			case errors.Is(err, domain.ErrUnauthorized):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case errors.Is(err, domain.ErrForbidden):
				http.Error(w, session.NoticeAccessDenied, http.StatusForbidden)
			default:
				logger.ErrorContext(r.Context(), "admin gate failed", slog.String("error", err.Error()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		})
	}
}
