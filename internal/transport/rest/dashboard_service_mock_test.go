package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ dashboardService = &dashboardServiceMock{}

type dashboardServiceMock struct {
	StatsFunc func(ctx context.Context) (domain.DashboardStats, error)

	calls struct {
		Stats []struct {
			Ctx context.Context
		}
	}
	lockStats sync.RWMutex
}

func (mock *dashboardServiceMock) Stats(ctx context.Context) (domain.DashboardStats, error) {
	if mock.StatsFunc == nil {
		panic("dashboardServiceMock.StatsFunc: method is nil but dashboardService.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *dashboardServiceMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
