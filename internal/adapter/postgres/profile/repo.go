// Package profile implements the Profile repository using PostgreSQL.
package profile

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

// Repo provides profile persistence backed by PostgreSQL. Email is joined
// from the owning principal.
type Repo struct {
	db postgres.Querier
}

// New creates a new profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	FullName  *string   `db:"full_name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() (domain.Profile, error) {
	role := domain.Role(r.Role)
	if !role.IsValid() {
		return domain.Profile{}, postgres.CorruptRow("profile", r.ID, "role", r.Role)
	}
	return domain.Profile{
		ID:        r.ID,
		Email:     r.Email,
		FullName:  r.FullName,
		Role:      role,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func selectProfiles() sq.SelectBuilder {
	return postgres.Builder.
		Select("p.id", "a.email", "p.full_name", "p.role", "p.created_at", "p.updated_at").
		From("profiles p").
		Join("principals a ON a.id = p.id")
}

// GetByID returns exactly one profile by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query, args, err := selectProfiles().Where("p.id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile.GetByID: build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}

	p, err := out.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the profiles for the given ids in unspecified order.
// Missing ids are simply absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}

	query, args, err := selectProfiles().Where(sq.Eq{"p.id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile.GetByIDs: build query: %w", err)
	}

	return r.scanAll(ctx, query, args)
}

// ListAll returns every profile ordered by created_at descending.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Profile, error) {
	query, args, err := selectProfiles().OrderBy("p.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile.ListAll: build query: %w", err)
	}

	return r.scanAll(ctx, query, args)
}

// Update applies the non-nil fields of patch to one profile and returns the
// stored result.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("patch", "no fields to update")
	}

	query, args, err := postgres.Builder.
		Update("profiles").
		Set("role", patch.Role.String()).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile.Update: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Upsert creates the profile of a principal or, if it exists, overwrites its
// role and, when given, its full name.
func (r *Repo) Upsert(ctx context.Context, id uuid.UUID, fullName *string, role domain.Role) (*domain.Profile, error) {
	query, args, err := postgres.Builder.
		Insert("profiles").
		Columns("id", "full_name", "role").
		Values(id, fullName, role.String()).
		Suffix("ON CONFLICT (id) DO UPDATE SET role = EXCLUDED.role, full_name = COALESCE(EXCLUDED.full_name, profiles.full_name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile.Upsert: build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}

	return r.GetByID(ctx, id)
}

// SetRoleByEmail sets the role of the profile owned by the principal with the
// given email.
func (r *Repo) SetRoleByEmail(ctx context.Context, email string, role domain.Role) (*domain.Profile, error) {
	query, args, err := postgres.Builder.
		Update("profiles").
		Set("role", role.String()).
		Where("id = (SELECT id FROM principals WHERE lower(email) = lower(?))", email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("profile.SetRoleByEmail: build query: %w", err)
	}

	var id uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return nil, postgres.MapError(err, "profile", uuid.Nil)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) scanAll(ctx context.Context, query string, args []any) ([]domain.Profile, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", uuid.Nil)
	}

	out := make([]domain.Profile, 0, len(rows))
	for _, rw := range rows {
		p, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
