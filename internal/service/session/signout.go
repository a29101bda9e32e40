package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// SignOut revokes every session of the calling principal.
// Returns ErrUnauthorized if no principal is found in context.
func (s *Service) SignOut(ctx context.Context) error {
	p, ok := principalFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	n, err := s.tokens.RevokeAllByUser(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("session.SignOut: %w", err)
	}

	s.log.InfoContext(ctx, "signed out",
		slog.String("user_id", p.ID.String()),
		slog.Int("sessions_revoked", n))
	s.publish(EventSignedOut, p)
	return nil
}

// ValidateToken validates an access token and checks that the session it was
// minted for is still open. Returns ErrUnauthorized otherwise.
func (s *Service) ValidateToken(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	active, err := s.tokens.IsActive(ctx, claims.SessionID, claims.UserID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("session.ValidateToken: %w", err)
	}
	if !active {
		return domain.Principal{}, domain.ErrUnauthorized
	}

	return domain.Principal{ID: claims.UserID, Email: claims.Email}, nil
}

// CleanupExpiredSessions removes all expired or revoked sessions.
// Returns the number of rows deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredSessions(ctx context.Context) (int, error) {
	count, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "session cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("session.CleanupExpiredSessions: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired sessions", slog.Int("count", count))
	}

	return count, nil
}
