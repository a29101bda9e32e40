package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ accountRepo = &accountRepoMock{}

type accountRepoMock struct {
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Account, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	calls struct {
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByEmail sync.RWMutex
	lockGetByID    sync.RWMutex
}

func (mock *accountRepoMock) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if mock.GetByEmailFunc == nil {
		panic("accountRepoMock.GetByEmailFunc: method is nil but accountRepo.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *accountRepoMock) GetByEmailCalls() []struct {
	Ctx   context.Context
	Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

func (mock *accountRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if mock.GetByIDFunc == nil {
		panic("accountRepoMock.GetByIDFunc: method is nil but accountRepo.GetByID was just called")
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

func (mock *accountRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
