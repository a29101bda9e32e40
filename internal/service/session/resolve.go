package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/pkg/ctxutil"
)

// principalFromCtx returns the principal placed in ctx by the auth middleware.
func principalFromCtx(ctx context.Context) (domain.Principal, bool) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Principal{}, false
	}
	return domain.Principal{ID: id, Email: ctxutil.EmailFromCtx(ctx)}, true
}

// resolve fetches exactly one profile for p and derives the session state.
// Any failure other than context cancellation resolves to non-admin.
func (s *Service) resolve(ctx context.Context, p domain.Principal) (Session, error) {
	sess := Session{Principal: &p}

	profile, err := s.profiles.GetByID(ctx, p.ID)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Session{}, fmt.Errorf("session.resolve: %w", err)
	case errors.Is(err, domain.ErrNotFound):
		s.log.InfoContext(ctx, "no profile for principal",
			slog.String("user_id", p.ID.String()))
		sess.State = StateAuthenticatedNonAdmin
		sess.Notice = NoticeAccessDenied
		return sess, nil
	default:
		s.log.ErrorContext(ctx, "profile lookup failed, treating as non-admin",
			slog.String("user_id", p.ID.String()),
			slog.String("error", err.Error()))
		sess.State = StateAuthenticatedNonAdmin
		sess.Notice = NoticeAccessDenied
		return sess, nil
	}

	sess.Profile = profile
	if profile.Role.IsAdmin() {
		sess.State = StateAuthenticatedAdmin
		return sess, nil
	}

	sess.State = StateAuthenticatedNonAdmin
	sess.Notice = NoticeAccessDenied
	return sess, nil
}

// CurrentSession resolves the caller's session. A context without a principal
// resolves to StateUnauthenticated. A signed-in non-admin is signed out and
// gets an unauthenticated session carrying NoticeAccessDenied.
func (s *Service) CurrentSession(ctx context.Context) (Session, error) {
	p, ok := principalFromCtx(ctx)
	if !ok {
		return Session{State: StateUnauthenticated}, nil
	}

	sess, err := s.resolve(ctx, p)
	if err != nil {
		return Session{}, err
	}
	if !sess.IsAdmin() {
		s.deny(ctx, p)
		return deniedSession(), nil
	}
	return sess, nil
}

// RequireAdmin resolves the caller's session and admits only admins.
// A signed-in non-admin is signed out and receives domain.ErrForbidden.
func (s *Service) RequireAdmin(ctx context.Context) (Session, error) {
	sess, err := s.CurrentSession(ctx)
	if err != nil {
		return Session{}, err
	}

	switch {
	case sess.IsAdmin():
		return sess, nil
	case sess.Notice == NoticeAccessDenied:
		return sess, domain.ErrForbidden
	default:
		return sess, domain.ErrUnauthorized
	}
}

func deniedSession() Session {
	return Session{State: StateUnauthenticated, Notice: NoticeAccessDenied}
}

// deny force-signs-out p and notifies subscribers.
func (s *Service) deny(ctx context.Context, p domain.Principal) {
	if _, err := s.tokens.RevokeAllByUser(ctx, p.ID); err != nil {
		s.log.ErrorContext(ctx, "forced sign-out failed",
			slog.String("user_id", p.ID.String()),
			slog.String("error", err.Error()))
	}

	s.log.WarnContext(ctx, "non-admin denied admin access",
		slog.String("user_id", p.ID.String()))
	s.publish(EventDenied, p)
}
