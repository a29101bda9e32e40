package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/serenity-backend/internal/service/session"
)

var _ sessionService = &sessionServiceMock{}

type sessionServiceMock struct {
	CurrentSessionFunc func(ctx context.Context) (session.Session, error)
	RefreshFunc        func(ctx context.Context, input session.RefreshInput) (*session.SignInResult, error)
	SignInFunc         func(ctx context.Context, input session.SignInInput) (*session.SignInResult, error)
	SignOutFunc        func(ctx context.Context) error

	calls struct {
		CurrentSession []struct {
			Ctx context.Context
		}
		Refresh []struct {
			Ctx   context.Context
			Input session.RefreshInput
		}
		SignIn []struct {
			Ctx   context.Context
			Input session.SignInInput
		}
		SignOut []struct {
			Ctx context.Context
		}
	}
	lockCurrentSession sync.RWMutex
	lockRefresh        sync.RWMutex
	lockSignIn         sync.RWMutex
	lockSignOut        sync.RWMutex
}

func (mock *sessionServiceMock) CurrentSession(ctx context.Context) (session.Session, error) {
	if mock.CurrentSessionFunc == nil {
		panic("sessionServiceMock.CurrentSessionFunc: method is nil but sessionService.CurrentSession was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCurrentSession.Lock()
	mock.calls.CurrentSession = append(mock.calls.CurrentSession, callInfo)
	mock.lockCurrentSession.Unlock()
	return mock.CurrentSessionFunc(ctx)
}

func (mock *sessionServiceMock) CurrentSessionCalls() []struct {
	Ctx context.Context
} {
	mock.lockCurrentSession.RLock()
	calls := mock.calls.CurrentSession
	mock.lockCurrentSession.RUnlock()
	return calls
}

func (mock *sessionServiceMock) Refresh(ctx context.Context, input session.RefreshInput) (*session.SignInResult, error) {
	if mock.RefreshFunc == nil {
		panic("sessionServiceMock.RefreshFunc: method is nil but sessionService.Refresh was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input session.RefreshInput
	}{Ctx: ctx, Input: input}
	mock.lockRefresh.Lock()
	mock.calls.Refresh = append(mock.calls.Refresh, callInfo)
	mock.lockRefresh.Unlock()
	return mock.RefreshFunc(ctx, input)
}

func (mock *sessionServiceMock) RefreshCalls() []struct {
	Ctx   context.Context
	Input session.RefreshInput
} {
	mock.lockRefresh.RLock()
	calls := mock.calls.Refresh
	mock.lockRefresh.RUnlock()
	return calls
}

func (mock *sessionServiceMock) SignIn(ctx context.Context, input session.SignInInput) (*session.SignInResult, error) {
	if mock.SignInFunc == nil {
		panic("sessionServiceMock.SignInFunc: method is nil but sessionService.SignIn was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input session.SignInInput
	}{Ctx: ctx, Input: input}
	mock.lockSignIn.Lock()
	mock.calls.SignIn = append(mock.calls.SignIn, callInfo)
	mock.lockSignIn.Unlock()
	return mock.SignInFunc(ctx, input)
}

func (mock *sessionServiceMock) SignInCalls() []struct {
	Ctx   context.Context
	Input session.SignInInput
} {
	mock.lockSignIn.RLock()
	calls := mock.calls.SignIn
	mock.lockSignIn.RUnlock()
	return calls
}

func (mock *sessionServiceMock) SignOut(ctx context.Context) error {
	if mock.SignOutFunc == nil {
		panic("sessionServiceMock.SignOutFunc: method is nil but sessionService.SignOut was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockSignOut.Lock()
	mock.calls.SignOut = append(mock.calls.SignOut, callInfo)
	mock.lockSignOut.Unlock()
	return mock.SignOutFunc(ctx)
}

func (mock *sessionServiceMock) SignOutCalls() []struct {
	Ctx context.Context
} {
	mock.lockSignOut.RLock()
	calls := mock.calls.SignOut
	mock.lockSignOut.RUnlock()
	return calls
}
