package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/serenity-backend/internal/auth"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// SignIn verifies credentials and, for admins only, opens a new session.
// Bad credentials yield domain.ErrUnauthorized. A principal whose profile is
// missing or not admin is signed out everywhere and receives domain.ErrForbidden.
func (s *Service) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.SignIn get account: %w", err)
	}

	if err := s.passwords.Compare(account.PasswordHash, input.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.SignIn compare password: %w", err)
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

	result, err := s.issueTokens(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("session.SignIn issue tokens: %w", err)
	}
	result.Session = sess

	s.log.InfoContext(ctx, "admin signed in", slog.String("user_id", p.ID.String()))
	s.publish(EventSignedIn, p)

	return result, nil
}
