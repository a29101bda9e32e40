// Package session resolves who is signed in and whether they may use the
// admin console.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/auth"
	"github.com/heartmarshall/serenity-backend/internal/config"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// accountRepo defines the principal repository interface needed by the session service.
type accountRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

// profileRepo defines the profile repository interface needed by the session service.
type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// tokenRepo defines the session (refresh token) repository interface.
type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	IsActive(ctx context.Context, id, userID uuid.UUID) (bool, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteExpired(ctx context.Context) (int, error)
}

// txManager defines the transaction manager interface needed by the session service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// tokenManager defines the JWT token management interface needed by the session service.
type tokenManager interface {
	GenerateAccessToken(userID uuid.UUID, email string, sessionID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (auth.AccessClaims, error)
	GenerateRefreshToken() (raw string, hash string, err error)
	AccessTTL() time.Duration
}

// passwordVerifier checks a password against its stored hash.
type passwordVerifier interface {
	Compare(hash, password string) error
}

// Service implements the session/role resolver.
type Service struct {
	log       *slog.Logger
	accounts  accountRepo
	profiles  profileRepo
	tokens    tokenRepo
	tx        txManager
	jwt       tokenManager
	passwords passwordVerifier
	cfg       config.AuthConfig

	mu          sync.RWMutex
	nextSubID   int
	subscribers map[int]func(Event)
}

// NewService creates a new session service instance.
func NewService(
	logger *slog.Logger,
	accounts accountRepo,
	profiles profileRepo,
	tokens tokenRepo,
	tx txManager,
	jwt tokenManager,
	passwords passwordVerifier,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "session"),
		accounts:    accounts,
		profiles:    profiles,
		tokens:      tokens,
		tx:          tx,
		jwt:         jwt,
		passwords:   passwords,
		cfg:         cfg,
		subscribers: make(map[int]func(Event)),
	}
}

// Subscribe registers fn for every auth-state transition and returns a
// function that removes the registration. fn is called synchronously on the
// goroutine that caused the transition and must not block.
func (s *Service) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Service) publish(typ EventType, p domain.Principal) {
	ev := Event{Type: typ, Principal: p, At: time.Now()}

	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// issueTokens stores a new session for the principal and returns the token pair.
func (s *Service) issueTokens(ctx context.Context, p domain.Principal) (*SignInResult, error) {
	rawRefresh, hashRefresh, err := s.jwt.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	stored, err := s.tokens.Create(ctx, p.ID, hashRefresh, time.Now().Add(s.cfg.RefreshTokenTTL))
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.GenerateAccessToken(p.ID, p.Email, stored.ID)
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresAt:    time.Now().Add(s.jwt.AccessTTL()),
	}, nil
}
