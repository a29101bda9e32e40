package intake

import (
	"context"
	"sync"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ inquiryRepo = &inquiryRepoMock{}

type inquiryRepoMock struct {
	CreateFunc func(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Inq *domain.Inquiry
		}
	}
	lockCreate sync.RWMutex
}

func (mock *inquiryRepoMock) Create(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error) {
	if mock.CreateFunc == nil {
		panic("inquiryRepoMock.CreateFunc: method is nil but inquiryRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Inq *domain.Inquiry
	}{Ctx: ctx, Inq: inq}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, inq)
}

func (mock *inquiryRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Inq *domain.Inquiry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
