package dataloader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	dl "github.com/heartmarshall/serenity-backend/internal/transport/dataloader"
)

type mockProfileRepo struct {
	mu     sync.Mutex
	rows   []domain.Profile
	err    error
	calls  int
	lastIn []uuid.UUID
}

func (m *mockProfileRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastIn = ids
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Profile
	for _, p := range m.rows {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func TestFromContext_PanicsWhenMissing(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { dl.FromContext(context.Background()) })
}

func TestMiddleware_InjectsLoaders(t *testing.T) {
	t.Parallel()

	var got *dl.Loaders
	h := dl.Middleware(&mockProfileRepo{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = dl.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.NotNil(t, got.ProfileByID)
}

func TestOwnerProfiles_BatchesAndDeduplicates(t *testing.T) {
	t.Parallel()

	owner := domain.Profile{ID: uuid.New(), Email: "pat@example.com", Role: domain.RoleUser}
	ghost := uuid.New()
	repo := &mockProfileRepo{rows: []domain.Profile{owner}}
	loaders := dl.NewLoaders(repo)

	bookings := []domain.Booking{
		{ID: uuid.New(), UserID: &owner.ID},
		{ID: uuid.New()},
		{ID: uuid.New(), UserID: &owner.ID},
		{ID: uuid.New(), UserID: &ghost},
	}

	got, err := loaders.OwnerProfiles(context.Background(), bookings)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "pat@example.com", got[owner.ID].Email)
	assert.Equal(t, 1, repo.calls)
	assert.ElementsMatch(t, []uuid.UUID{owner.ID, ghost}, repo.lastIn)
}

func TestOwnerProfiles_NoOwners(t *testing.T) {
	t.Parallel()

	repo := &mockProfileRepo{}
	got, err := dl.NewLoaders(repo).OwnerProfiles(context.Background(), []domain.Booking{{ID: uuid.New()}})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, repo.calls)
}

func TestOwnerProfiles_RepoError(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repoErr := errors.New("db down")
	repo := &mockProfileRepo{err: repoErr}

	_, err := dl.NewLoaders(repo).OwnerProfiles(context.Background(), []domain.Booking{{ID: uuid.New(), UserID: &id}})
	assert.ErrorIs(t, err, repoErr)
}
