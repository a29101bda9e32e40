// Package moderation implements the admin list/filter/update loop shared by
// inquiries, bookings and user profiles.
package moderation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/pkg/ctxutil"
)

// Record is a row kind the workflow can moderate.
type Record interface {
	RecordID() uuid.UUID
	// SearchFields are the fields matched by the free-text search.
	SearchFields() []string
	// FilterKey is the value compared against the status (or role) filter.
	FilterKey() string
}

// Patch is an operator edit of a record kind.
type Patch[P any] interface {
	Normalize() P
	IsEmpty() bool
	Validate() error
}

// store is the repository contract every record kind satisfies.
type store[K Record, P any] interface {
	ListAll(ctx context.Context) ([]K, error)
	GetByID(ctx context.Context, id uuid.UUID) (*K, error)
	Update(ctx context.Context, id uuid.UUID, patch P) (*K, error)
}

// UpdateResult carries the updated record and the re-fetched list.
// ListErr is set when the write succeeded but the re-fetch did not; Items is
// nil in that case.
type UpdateResult[K Record] struct {
	Record  K
	Items   []K
	ListErr error
}

// Stale reports whether Items could not be refreshed after the update.
func (r UpdateResult[K]) Stale() bool {
	return r.ListErr != nil
}

// Workflow moderates one record kind.
type Workflow[K Record, P Patch[P]] struct {
	log         *slog.Logger
	store       store[K, P]
	kind        string
	validFilter func(string) bool
	guard       func(ctx context.Context, id uuid.UUID, patch P) error
}

func newWorkflow[K Record, P Patch[P]](
	logger *slog.Logger,
	s store[K, P],
	kind string,
	validFilter func(string) bool,
) *Workflow[K, P] {
	return &Workflow[K, P]{
		log:         logger.With("service", "moderation", "kind", kind),
		store:       s,
		kind:        kind,
		validFilter: validFilter,
	}
}

// Kind returns the record kind name, e.g. "inquiries".
func (w *Workflow[K, P]) Kind() string {
	return w.kind
}

// List fetches every record and keeps the ones that match filter, preserving
// the fetched order (newest first).
func (w *Workflow[K, P]) List(ctx context.Context, filter domain.RecordFilter) ([]K, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := w.validateFilter(filter); err != nil {
		return nil, err
	}

	all, err := w.store.ListAll(ctx)
	if err != nil {
		w.log.ErrorContext(ctx, "list failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("moderation.List %s: %w", w.kind, err)
	}

	return applyFilter(all, filter), nil
}

// Get returns one record by id.
func (w *Workflow[K, P]) Get(ctx context.Context, id uuid.UUID) (K, error) {
	var zero K
	if !ctxutil.IsAdminCtx(ctx) {
		return zero, domain.ErrForbidden
	}

	rec, err := w.store.GetByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("moderation.Get %s: %w", w.kind, err)
	}
	return *rec, nil
}

// Update applies an operator patch to one record and returns the stored
// result. Blank fields in patch keep the stored value. A failed update changes
// nothing and is not retried.
func (w *Workflow[K, P]) Update(ctx context.Context, id uuid.UUID, patch P) (K, error) {
	var zero K
	if !ctxutil.IsAdminCtx(ctx) {
		return zero, domain.ErrForbidden
	}

	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		return zero, err
	}
	if w.guard != nil {
		if err := w.guard(ctx, id, patch); err != nil {
			return zero, err
		}
	}

	rec, err := w.store.Update(ctx, id, patch)
	if err != nil {
		w.log.ErrorContext(ctx, "update failed",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return zero, fmt.Errorf("moderation.Update %s: %w", w.kind, err)
	}

	w.log.InfoContext(ctx, "record updated", slog.String("id", id.String()))
	return *rec, nil
}

// UpdateAndRelist updates one record and then re-fetches the full list with
// filter applied. Once the write has succeeded the call does not fail: a
// re-fetch error is reported through UpdateResult.ListErr.
func (w *Workflow[K, P]) UpdateAndRelist(ctx context.Context, id uuid.UUID, patch P, filter domain.RecordFilter) (UpdateResult[K], error) {
	if err := w.validateFilter(filter); err != nil {
		return UpdateResult[K]{}, err
	}

	rec, err := w.Update(ctx, id, patch)
	if err != nil {
		return UpdateResult[K]{}, err
	}

	items, err := w.List(ctx, filter)
	if err != nil {
		w.log.WarnContext(ctx, "record updated but list refresh failed",
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return UpdateResult[K]{Record: rec, ListErr: err}, nil
	}

	return UpdateResult[K]{Record: rec, Items: items}, nil
}

func (w *Workflow[K, P]) validateFilter(filter domain.RecordFilter) error {
	if filter.Status == "" || filter.Status == domain.FilterAll {
		return nil
	}
	if !w.validFilter(filter.Status) {
		return domain.NewValidationError("status", fmt.Sprintf("unknown %s filter %q", w.kind, filter.Status))
	}
	return nil
}
