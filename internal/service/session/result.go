package session

import (
	"time"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// State is the resolved authorization state of a caller.
type State string

const (
	StateLoading               State = "loading"
	StateUnauthenticated       State = "unauthenticated"
	StateAuthenticatedNonAdmin State = "authenticated_non_admin"
	StateAuthenticatedAdmin    State = "authenticated_admin"
)

// NoticeAccessDenied is the user-facing notice for a signed-in non-admin.
const NoticeAccessDenied = "access denied"

// Session is the outcome of role resolution for one caller.
type Session struct {
	State     State
	Principal *domain.Principal
	Profile   *domain.Profile
	Notice    string
}

// IsAuthenticated reports whether a principal is present.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticatedAdmin || s.State == StateAuthenticatedNonAdmin
}

// IsAdmin is true only when a profile with role admin was found.
func (s Session) IsAdmin() bool {
	return s.State == StateAuthenticatedAdmin
}

// IsLoading reports whether resolution is still in progress.
func (s Session) IsLoading() bool {
	return s.State == StateLoading
}

// SignInResult is returned by SignIn and Refresh.
type SignInResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	ExpiresAt    time.Time
	Session      Session
}

// EventType names an auth-state transition.
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
	EventDenied    EventType = "denied"
)

// Event is delivered to subscribers on every auth-state transition.
type Event struct {
	Type      EventType
	Principal domain.Principal
	At        time.Time
}
