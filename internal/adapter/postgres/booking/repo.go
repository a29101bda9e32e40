// Package booking implements the session booking repository using PostgreSQL.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

const table = "session_bookings"

var columns = []string{
	"id", "user_id", "name", "email", "phone", "session_type", "preferred_date",
	"preferred_time", "notes", "status", "admin_notes", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides session booking persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new booking repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID            uuid.UUID  `db:"id"`
	UserID        *uuid.UUID `db:"user_id"`
	Name          string     `db:"name"`
	Email         string     `db:"email"`
	Phone         *string    `db:"phone"`
	SessionType   string     `db:"session_type"`
	PreferredDate *time.Time `db:"preferred_date"`
	PreferredTime *string    `db:"preferred_time"`
	Notes         *string    `db:"notes"`
	Status        string     `db:"status"`
	AdminNotes    *string    `db:"admin_notes"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (r row) toDomain() (domain.Booking, error) {
	status := domain.BookingStatus(r.Status)
	if !status.IsValid() {
		return domain.Booking{}, postgres.CorruptRow("session_booking", r.ID, "status", r.Status)
	}

	return domain.Booking{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		SessionType:   r.SessionType,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		Notes:         r.Notes,
		Status:        status,
		AdminNotes:    r.AdminNotes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// ListAll returns every booking ordered by created_at descending.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Booking, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("booking.ListAll: build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "session_booking", uuid.Nil)
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, rw := range rows {
		b, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// GetByID returns exactly one booking.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("booking.GetByID: build query: %w", err)
	}

	return r.getOne(ctx, id, query, args)
}

// Create inserts a new booking and returns the stored row.
func (r *Repo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	query, args, err := postgres.Builder.
		Insert(table).
		Columns("user_id", "name", "email", "phone", "session_type", "preferred_date", "preferred_time", "notes", "status").
		Values(b.UserID, b.Name, b.Email, b.Phone, b.SessionType, b.PreferredDate, b.PreferredTime, b.Notes, b.Status.String()).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("booking.Create: build query: %w", err)
	}

	return r.getOne(ctx, uuid.Nil, query, args)
}

// Update applies the non-nil fields of patch to one booking as a single
// statement and returns the stored result.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (*domain.Booking, error) {
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("patch", "no fields to update")
	}

	b := postgres.Builder.Update(table)
	if patch.Status != nil {
		b = b.Set("status", patch.Status.String())
	}
	if patch.AdminNotes != nil {
		b = b.Set("admin_notes", *patch.AdminNotes)
	}

	query, args, err := b.Where("id = ?", id).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("booking.Update: build query: %w", err)
	}

	return r.getOne(ctx, id, query, args)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, query string, args []any) (*domain.Booking, error) {
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "session_booking", id)
	}

	b, err := out.toDomain()
	if err != nil {
		return nil, err
	}
	return &b, nil
}
