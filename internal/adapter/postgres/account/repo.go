// Package account implements principal (credential) persistence using PostgreSQL.
package account

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

const table = "principals"

var columns = []string{"id", "email", "password_hash", "created_at", "updated_at"}

// Repo provides principal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// GetByEmail returns a principal by case-insensitive email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Expr("lower(email) = lower(?)", email)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("account.GetByEmail: build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "principal", uuid.Nil)
	}
	return out.toDomain(), nil
}

// GetByID returns a principal by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("account.GetByID: build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "principal", id)
	}
	return out.toDomain(), nil
}

// Create inserts a new principal. A duplicate email yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	query, args, err := postgres.Builder.
		Insert(table).
		Columns("email", "password_hash").
		Values(email, passwordHash).
		Suffix("RETURNING id, email, password_hash, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("account.Create: build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "principal", uuid.Nil)
	}
	return out.toDomain(), nil
}

// SetPasswordHash replaces the stored password hash.
func (r *Repo) SetPasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query, args, err := postgres.Builder.
		Update(table).
		Set("password_hash", passwordHash).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("account.SetPasswordHash: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "principal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("principal %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
