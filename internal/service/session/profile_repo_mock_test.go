package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ profileRepo = &profileRepoMock{}

type profileRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *profileRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if mock.GetByIDFunc == nil {
		panic("profileRepoMock.GetByIDFunc: method is nil but profileRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *profileRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
