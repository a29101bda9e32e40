package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

var _ statsRepo = &statsRepoMock{}

type statsRepoMock struct {
	DashboardFunc func(ctx context.Context, since time.Time) (domain.DashboardStats, error)

	calls struct {
		Dashboard []struct {
			Ctx   context.Context
			Since time.Time
		}
	}
	lockDashboard sync.RWMutex
}

func (mock *statsRepoMock) Dashboard(ctx context.Context, since time.Time) (domain.DashboardStats, error) {
	if mock.DashboardFunc == nil {
		panic("statsRepoMock.DashboardFunc: method is nil but statsRepo.Dashboard was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Since time.Time
	}{Ctx: ctx, Since: since}
	mock.lockDashboard.Lock()
	mock.calls.Dashboard = append(mock.calls.Dashboard, callInfo)
	mock.lockDashboard.Unlock()
	return mock.DashboardFunc(ctx, since)
}

func (mock *statsRepoMock) DashboardCalls() []struct {
	Ctx   context.Context
	Since time.Time
} {
	mock.lockDashboard.RLock()
	calls := mock.calls.Dashboard
	mock.lockDashboard.RUnlock()
	return calls
}
