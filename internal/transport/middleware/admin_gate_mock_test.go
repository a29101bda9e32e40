package middleware

import (
	"context"
	"sync"

	"github.com/heartmarshall/serenity-backend/internal/service/session"
)

var _ adminGate = &adminGateMock{}

type adminGateMock struct {
	RequireAdminFunc func(ctx context.Context) (session.Session, error)

	calls struct {
		RequireAdmin []struct {
			Ctx context.Context
		}
	}
	lockRequireAdmin sync.RWMutex
}

func (mock *adminGateMock) RequireAdmin(ctx context.Context) (session.Session, error) {
	if mock.RequireAdminFunc == nil {
		panic("adminGateMock.RequireAdminFunc: method is nil but adminGate.RequireAdmin was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockRequireAdmin.Lock()
	mock.calls.RequireAdmin = append(mock.calls.RequireAdmin, callInfo)
	mock.lockRequireAdmin.Unlock()
	return mock.RequireAdminFunc(ctx)
}

func (mock *adminGateMock) RequireAdminCalls() []struct {
	Ctx context.Context
} {
	mock.lockRequireAdmin.RLock()
	calls := mock.calls.RequireAdmin
	mock.lockRequireAdmin.RUnlock()
	return calls
}
