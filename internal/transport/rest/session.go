package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/session"
)

// sessionService defines the minimal interface needed by SessionHandler.
type sessionService interface {
	SignIn(ctx context.Context, input session.SignInInput) (*session.SignInResult, error)
	Refresh(ctx context.Context, input session.RefreshInput) (*session.SignInResult, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (session.Session, error)
}

// SessionHandler serves the admin console sign-in endpoints.
type SessionHandler struct {
	svc sessionService
	log *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, log: logger.With("handler", "session")}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Session      sessionResponse `json:"session"`
}

type sessionResponse struct {
	State         string             `json:"state"`
	Authenticated bool               `json:"authenticated"`
	IsAdmin       bool               `json:"isAdmin"`
	Notice        string             `json:"notice,omitempty"`
	Principal     *principalResponse `json:"principal,omitempty"`
	Profile       *profileResponse   `json:"profile,omitempty"`
}

type principalResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignIn handles POST /api/auth/sign-in.
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.SignIn(r.Context(), session.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(result))
}

// Refresh handles POST /api/auth/refresh.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Refresh(r.Context(), session.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenResponse(result))
}

// SignOut handles POST /api/auth/sign-out. The bearer token has already been
// resolved by the auth middleware.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SignOut(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session.Session{State: session.StateUnauthenticated}))
}

// Current handles GET /api/auth/session.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.CurrentSession(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

func toTokenResponse(result *session.SignInResult) tokenResponse {
	return tokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.ExpiresAt,
		Session:      toSessionResponse(result.Session),
	}
}

func toSessionResponse(s session.Session) sessionResponse {
	resp := sessionResponse{
		State:         string(s.State),
		Authenticated: s.IsAuthenticated(),
		IsAdmin:       s.IsAdmin(),
		Notice:        s.Notice,
	}
	if s.Principal != nil {
		resp.Principal = &principalResponse{ID: s.Principal.ID.String(), Email: s.Principal.Email}
	}
	if s.Profile != nil {
		p := toProfileResponse(*s.Profile)
		resp.Profile = &p
	}
	return resp
}
