package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/auth"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// Refresh rotates a refresh token. The role is resolved again, so a demoted
// admin cannot keep a session alive.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*SignInResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	token, err := s.tokens.GetByHash(ctx, auth.HashToken(input.RefreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh with unknown or revoked token")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.Refresh get token: %w", err)
	}

	if token.IsExpired(time.Now()) {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted principal",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.Refresh get account: %w", err)
	}

	p := account.Principal()

	sess, err := s.resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	if !sess.IsAdmin() {
		s.deny(ctx, p)
		return nil, domain.ErrForbidden
	}

	var result *SignInResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.tokens.RevokeByID(ctx, token.ID); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
		var err error
		result, err = s.issueTokens(ctx, p)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh token already rotated",
				slog.String("user_id", p.ID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.Refresh: %w", err)
	}
	result.Session = sess

	return result, nil
}
