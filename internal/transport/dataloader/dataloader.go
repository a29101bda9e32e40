// Package dataloader provides per-request loaders that batch profile lookups
// made while rendering admin lists into single SQL calls.
package dataloader

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type profileRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error)
}

// Loaders contains the per-request loaders.
type Loaders struct {
	ProfileByID *dataloader.Loader[uuid.UUID, *domain.Profile]
}

// NewLoaders creates a new set of loaders. Must be called per request, since
// loaders cache results for their lifetime.
func NewLoaders(profiles profileRepo) *Loaders {
	return &Loaders{
		ProfileByID: dataloader.NewBatchedLoader(
			newProfileBatchFn(profiles),
			dataloader.WithWait[uuid.UUID, *domain.Profile](wait),
			dataloader.WithBatchCapacity[uuid.UUID, *domain.Profile](maxBatch),
		),
	}
}

// newProfileBatchFn loads profiles by id. A missing profile yields nil data,
// not an error.
func newProfileBatchFn(repo profileRepo) dataloader.BatchFunc[uuid.UUID, *domain.Profile] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Profile] {
		rows, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[*domain.Profile], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[*domain.Profile]{Error: err}
			}
			return results
		}

		byID := make(map[uuid.UUID]*domain.Profile, len(rows))
		for i := range rows {
			p := rows[i]
			byID[p.ID] = &p
		}

		results := make([]*dataloader.Result[*domain.Profile], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Profile]{Data: byID[key]}
		}
		return results
	}
}

// OwnerProfiles resolves the owning profile of every booking that has one.
// Bookings submitted anonymously are skipped.
func (l *Loaders) OwnerProfiles(ctx context.Context, bookings []domain.Booking) (map[uuid.UUID]*domain.Profile, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, b := range bookings {
		if b.UserID == nil {
			continue
		}
		if _, ok := seen[*b.UserID]; ok {
			continue
		}
		seen[*b.UserID] = struct{}{}
		ids = append(ids, *b.UserID)
	}

	out := make(map[uuid.UUID]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	profiles, errs := l.ProfileByID.LoadMany(ctx, ids)()
	for i, id := range ids {
		if len(errs) > i && errs[i] != nil {
			return nil, errs[i]
		}
		if profiles[i] != nil {
			out[id] = profiles[i]
		}
	}
	return out, nil
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}

// Middleware creates per-request loaders and stores them in the request context.
func Middleware(profiles profileRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(profiles))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
