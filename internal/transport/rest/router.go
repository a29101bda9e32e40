// Package rest exposes the back office over JSON/HTTP: public forms, admin
// console sign-in, the admin moderation screens and health probes.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/config"
	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/session"
	dl "github.com/heartmarshall/serenity-backend/internal/transport/dataloader"
	"github.com/heartmarshall/serenity-backend/internal/transport/middleware"
)

// sessionGate is what the router needs from the session resolver besides the
// handler endpoints.
type sessionGate interface {
	ValidateToken(ctx context.Context, token string) (domain.Principal, error)
	RequireAdmin(ctx context.Context) (session.Session, error)
}

type profileBatcher interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error)
}

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Logger       *slog.Logger
	CORS         config.CORSConfig
	MaxBodyBytes int64
	Sessions     sessionGate
	Profiles     profileBatcher

	Session *SessionHandler
	Admin   *AdminHandler
	Intake  *IntakeHandler
	Health  *HealthHandler
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	mux.HandleFunc("POST /api/contact", d.Intake.SubmitInquiry)
	mux.HandleFunc("POST /api/bookings", d.Intake.SubmitBooking)

	mux.HandleFunc("POST /api/auth/sign-in", d.Session.SignIn)
	mux.HandleFunc("POST /api/auth/refresh", d.Session.Refresh)
	mux.HandleFunc("POST /api/auth/sign-out", d.Session.SignOut)
	mux.HandleFunc("GET /api/auth/session", d.Session.Current)

	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/stats", d.Admin.Stats)
	admin.HandleFunc("GET /api/admin/inquiries", d.Admin.ListInquiries)
	admin.HandleFunc("GET /api/admin/inquiries/{id}", d.Admin.GetInquiry)
	admin.HandleFunc("PATCH /api/admin/inquiries/{id}", d.Admin.UpdateInquiry)
	admin.HandleFunc("GET /api/admin/bookings", d.Admin.ListBookings)
	admin.HandleFunc("GET /api/admin/bookings/{id}", d.Admin.GetBooking)
	admin.HandleFunc("PATCH /api/admin/bookings/{id}", d.Admin.UpdateBooking)
	admin.HandleFunc("GET /api/admin/users", d.Admin.ListUsers)
	admin.HandleFunc("GET /api/admin/users/{id}", d.Admin.GetUser)
	admin.HandleFunc("PATCH /api/admin/users/{id}", d.Admin.UpdateUser)

	mux.Handle("/api/admin/", middleware.Chain(
		middleware.RequireAdmin(d.Sessions, d.Logger),
		dl.Middleware(d.Profiles),
	)(admin))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
		middleware.BodyLimit(d.MaxBodyBytes),
		middleware.Auth(d.Sessions),
	)(mux)
}
