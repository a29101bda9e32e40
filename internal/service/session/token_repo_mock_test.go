package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ tokenRepo = &tokenRepoMock{}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	DeleteExpiredFunc   func(ctx context.Context) (int, error)
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	IsActiveFunc        func(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error)
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			TokenHash string
			ExpiresAt time.Time
		}
		DeleteExpired []struct {
			Ctx context.Context
		}
		GetByHash []struct {
			Ctx       context.Context
			TokenHash string
		}
		IsActive []struct {
			Ctx    context.Context
			Id     uuid.UUID
			UserID uuid.UUID
		}
		RevokeAllByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		RevokeByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockCreate          sync.RWMutex
	lockDeleteExpired   sync.RWMutex
	lockGetByHash       sync.RWMutex
	lockIsActive        sync.RWMutex
	lockRevokeAllByUser sync.RWMutex
	lockRevokeByID      sync.RWMutex
}

func (mock *tokenRepoMock) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	if mock.CreateFunc == nil {
		panic("tokenRepoMock.CreateFunc: method is nil but tokenRepo.Create was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		TokenHash string
		ExpiresAt time.Time
	}{Ctx: ctx, UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, userID, tokenHash, expiresAt)
}

func (mock *tokenRepoMock) CreateCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	if mock.DeleteExpiredFunc == nil {
		panic("tokenRepoMock.DeleteExpiredFunc: method is nil but tokenRepo.DeleteExpired was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockDeleteExpired.Lock()
	mock.calls.DeleteExpired = append(mock.calls.DeleteExpired, callInfo)
	mock.lockDeleteExpired.Unlock()
	return mock.DeleteExpiredFunc(ctx)
}

func (mock *tokenRepoMock) DeleteExpiredCalls() []struct {
	Ctx context.Context
} {
	mock.lockDeleteExpired.RLock()
	calls := mock.calls.DeleteExpired
	mock.lockDeleteExpired.RUnlock()
	return calls
}

func (mock *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if mock.GetByHashFunc == nil {
		panic("tokenRepoMock.GetByHashFunc: method is nil but tokenRepo.GetByHash was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TokenHash string
	}{Ctx: ctx, TokenHash: tokenHash}
	mock.lockGetByHash.Lock()
	mock.calls.GetByHash = append(mock.calls.GetByHash, callInfo)
	mock.lockGetByHash.Unlock()
	return mock.GetByHashFunc(ctx, tokenHash)
}

func (mock *tokenRepoMock) GetByHashCalls() []struct {
	Ctx       context.Context
	TokenHash string
} {
	mock.lockGetByHash.RLock()
	calls := mock.calls.GetByHash
	mock.lockGetByHash.RUnlock()
	return calls
}

func (mock *tokenRepoMock) IsActive(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	if mock.IsActiveFunc == nil {
		panic("tokenRepoMock.IsActiveFunc: method is nil but tokenRepo.IsActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Id     uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, Id: id, UserID: userID}
	mock.lockIsActive.Lock()
	mock.calls.IsActive = append(mock.calls.IsActive, callInfo)
	mock.lockIsActive.Unlock()
	return mock.IsActiveFunc(ctx, id, userID)
}

func (mock *tokenRepoMock) IsActiveCalls() []struct {
	Ctx    context.Context
	Id     uuid.UUID
	UserID uuid.UUID
} {
	mock.lockIsActive.RLock()
	calls := mock.calls.IsActive
	mock.lockIsActive.RUnlock()
	return calls
}

func (mock *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.RevokeAllByUserFunc == nil {
		panic("tokenRepoMock.RevokeAllByUserFunc: method is nil but tokenRepo.RevokeAllByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockRevokeAllByUser.Lock()
	mock.calls.RevokeAllByUser = append(mock.calls.RevokeAllByUser, callInfo)
	mock.lockRevokeAllByUser.Unlock()
	return mock.RevokeAllByUserFunc(ctx, userID)
}

func (mock *tokenRepoMock) RevokeAllByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockRevokeAllByUser.RLock()
	calls := mock.calls.RevokeAllByUser
	mock.lockRevokeAllByUser.RUnlock()
	return calls
}

func (mock *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	if mock.RevokeByIDFunc == nil {
		panic("tokenRepoMock.RevokeByIDFunc: method is nil but tokenRepo.RevokeByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockRevokeByID.Lock()
	mock.calls.RevokeByID = append(mock.calls.RevokeByID, callInfo)
	mock.lockRevokeByID.Unlock()
	return mock.RevokeByIDFunc(ctx, id)
}

func (mock *tokenRepoMock) RevokeByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockRevokeByID.RLock()
	calls := mock.calls.RevokeByID
	mock.lockRevokeByID.RUnlock()
	return calls
}
