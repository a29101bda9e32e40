// Package token implements the RefreshToken (session) repository using PostgreSQL.
package token

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

const table = "refresh_tokens"

var columns = []string{"id", "user_id", "token_hash", "expires_at", "created_at", "revoked_at"}

var active = sq.And{
	sq.Expr("revoked_at IS NULL"),
	sq.Expr("expires_at > now()"),
}

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new token repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func (r row) toDomain() *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		RevokedAt: r.RevokedAt,
	}
}

// Create inserts a new refresh token and returns the stored row.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	query, args, err := postgres.Builder.
		Insert(table).
		Columns("user_id", "token_hash", "expires_at").
		Values(userID, tokenHash, expiresAt).
		Suffix("RETURNING id, user_id, token_hash, expires_at, created_at, revoked_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("token.Create: build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return out.toDomain(), nil
}

// GetByHash returns an active (non-revoked, non-expired) refresh token by its hash.
// Returns domain.ErrNotFound if the token does not exist, is revoked, or is expired.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.And{sq.Expr("token_hash = ?", tokenHash), active}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("token.GetByHash: build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return out.toDomain(), nil
}

// IsActive reports whether the session with the given id exists, belongs to
// userID, and is neither revoked nor expired.
func (r *Repo) IsActive(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	query, args, err := postgres.Builder.
		Select("1").
		From(table).
		Where(sq.And{sq.Expr("id = ?", id), sq.Expr("user_id = ?", userID), active}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("token.IsActive: build query: %w", err)
	}

	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "refresh_token", id)
	}
	return exists, nil
}

// RevokeByID revokes one active refresh token. It returns domain.ErrNotFound
// when the token is unknown or already revoked, so each token rotates once.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder.
		Update(table).
		Set("revoked_at", sq.Expr("now()")).
		Where(sq.And{sq.Expr("id = ?", id), sq.Expr("revoked_at IS NULL")}).
		ToSql()
	if err != nil {
		return fmt.Errorf("token.RevokeByID: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh_token %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// RevokeAllByUser revokes all active refresh tokens for the given user.
// Returns the number of sessions revoked.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := postgres.Builder.
		Update(table).
		Set("revoked_at", sq.Expr("now()")).
		Where(sq.And{sq.Expr("user_id = ?", userID), sq.Expr("revoked_at IS NULL")}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("token.RevokeAllByUser: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteExpired removes all expired or revoked tokens from the database.
// Returns the count of deleted tokens.
// May delete many records; does not use a transaction.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder.
		Delete(table).
		Where(sq.Or{sq.Expr("expires_at <= now()"), sq.Expr("revoked_at IS NOT NULL")}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("token.DeleteExpired: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}
