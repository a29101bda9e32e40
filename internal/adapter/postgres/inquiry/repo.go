// Package inquiry implements the contact inquiry repository using PostgreSQL.
package inquiry

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

const table = "inquiries"

var columns = []string{
	"id", "name", "email", "phone", "subject", "message", "urgency",
	"status", "admin_response", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides inquiry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new inquiry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Phone         *string   `db:"phone"`
	Subject       *string   `db:"subject"`
	Message       string    `db:"message"`
	Urgency       *string   `db:"urgency"`
	Status        string    `db:"status"`
	AdminResponse *string   `db:"admin_response"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r row) toDomain() (domain.Inquiry, error) {
	status := domain.InquiryStatus(r.Status)
	if !status.IsValid() {
		return domain.Inquiry{}, postgres.CorruptRow("inquiry", r.ID, "status", r.Status)
	}

	var urgency *domain.Urgency
	if r.Urgency != nil {
		u := domain.Urgency(*r.Urgency)
		if !u.IsValid() {
			return domain.Inquiry{}, postgres.CorruptRow("inquiry", r.ID, "urgency", *r.Urgency)
		}
		urgency = &u
	}

	return domain.Inquiry{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Subject:       r.Subject,
		Message:       r.Message,
		Urgency:       urgency,
		Status:        status,
		AdminResponse: r.AdminResponse,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// ListAll returns every inquiry ordered by created_at descending.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Inquiry, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("inquiry.ListAll: build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "inquiry", uuid.Nil)
	}

	out := make([]domain.Inquiry, 0, len(rows))
	for _, rw := range rows {
		inq, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, inq)
	}
	return out, nil
}

// GetByID returns exactly one inquiry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("inquiry.GetByID: build query: %w", err)
	}

	return r.getOne(ctx, id, query, args)
}

// Create inserts a new inquiry and returns the stored row.
func (r *Repo) Create(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error) {
	var urgency *string
	if inq.Urgency != nil {
		s := inq.Urgency.String()
		urgency = &s
	}

	query, args, err := postgres.Builder.
		Insert(table).
		Columns("name", "email", "phone", "subject", "message", "urgency", "status").
		Values(inq.Name, inq.Email, inq.Phone, inq.Subject, inq.Message, urgency, inq.Status.String()).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("inquiry.Create: build query: %w", err)
	}

	return r.getOne(ctx, uuid.Nil, query, args)
}

// Update applies the non-nil fields of patch to one inquiry as a single
// statement and returns the stored result.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.InquiryPatch) (*domain.Inquiry, error) {
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("patch", "no fields to update")
	}

	b := postgres.Builder.Update(table)
	if patch.Status != nil {
		b = b.Set("status", patch.Status.String())
	}
	if patch.AdminResponse != nil {
		b = b.Set("admin_response", *patch.AdminResponse)
	}

	query, args, err := b.Where("id = ?", id).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("inquiry.Update: build query: %w", err)
	}

	return r.getOne(ctx, id, query, args)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, query string, args []any) (*domain.Inquiry, error) {
	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "inquiry", id)
	}

	inq, err := out.toDomain()
	if err != nil {
		return nil, err
	}
	return &inq, nil
}
