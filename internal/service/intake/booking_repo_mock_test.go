package intake

import (
	"context"
	"sync"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ bookingRepo = &bookingRepoMock{}

type bookingRepoMock struct {
	CreateFunc func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			B   *domain.Booking
		}
	}
	lockCreate sync.RWMutex
}

func (mock *bookingRepoMock) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if mock.CreateFunc == nil {
		panic("bookingRepoMock.CreateFunc: method is nil but bookingRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   *domain.Booking
	}{Ctx: ctx, B: b}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, b)
}

func (mock *bookingRepoMock) CreateCalls() []struct {
	Ctx context.Context
	B   *domain.Booking
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
