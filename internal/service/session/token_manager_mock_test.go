package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/auth"
)

var _ tokenManager = &tokenManagerMock{}

type tokenManagerMock struct {
	AccessTTLFunc            func() time.Duration
	GenerateAccessTokenFunc  func(userID uuid.UUID, email string, sessionID uuid.UUID) (string, error)
	GenerateRefreshTokenFunc func() (string, string, error)
	ValidateAccessTokenFunc  func(token string) (auth.AccessClaims, error)

	calls struct {
		AccessTTL []struct{}
		GenerateAccessToken []struct {
			UserID    uuid.UUID
			Email     string
			SessionID uuid.UUID
		}
		GenerateRefreshToken []struct{}
		ValidateAccessToken []struct {
			Token string
		}
	}
	lockAccessTTL            sync.RWMutex
	lockGenerateAccessToken  sync.RWMutex
	lockGenerateRefreshToken sync.RWMutex
	lockValidateAccessToken  sync.RWMutex
}

func (mock *tokenManagerMock) AccessTTL() time.Duration {
	if mock.AccessTTLFunc == nil {
		panic("tokenManagerMock.AccessTTLFunc: method is nil but tokenManager.AccessTTL was just called")
	}
	mock.lockAccessTTL.Lock()
	mock.calls.AccessTTL = append(mock.calls.AccessTTL, struct{}{})
	mock.lockAccessTTL.Unlock()
	return mock.AccessTTLFunc()
}

func (mock *tokenManagerMock) AccessTTLCalls() []struct{} {
	mock.lockAccessTTL.RLock()
	calls := mock.calls.AccessTTL
	mock.lockAccessTTL.RUnlock()
	return calls
}

func (mock *tokenManagerMock) GenerateAccessToken(userID uuid.UUID, email string, sessionID uuid.UUID) (string, error) {
	if mock.GenerateAccessTokenFunc == nil {
		panic("tokenManagerMock.GenerateAccessTokenFunc: method is nil but tokenManager.GenerateAccessToken was just called")
	}
	callInfo := struct {
		UserID    uuid.UUID
		Email     string
		SessionID uuid.UUID
	}{UserID: userID, Email: email, SessionID: sessionID}
	mock.lockGenerateAccessToken.Lock()
	mock.calls.GenerateAccessToken = append(mock.calls.GenerateAccessToken, callInfo)
	mock.lockGenerateAccessToken.Unlock()
	return mock.GenerateAccessTokenFunc(userID, email, sessionID)
}

func (mock *tokenManagerMock) GenerateAccessTokenCalls() []struct {
	UserID    uuid.UUID
	Email     string
	SessionID uuid.UUID
} {
	mock.lockGenerateAccessToken.RLock()
	calls := mock.calls.GenerateAccessToken
	mock.lockGenerateAccessToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) GenerateRefreshToken() (string, string, error) {
	if mock.GenerateRefreshTokenFunc == nil {
		panic("tokenManagerMock.GenerateRefreshTokenFunc: method is nil but tokenManager.GenerateRefreshToken was just called")
	}
	mock.lockGenerateRefreshToken.Lock()
	mock.calls.GenerateRefreshToken = append(mock.calls.GenerateRefreshToken, struct{}{})
	mock.lockGenerateRefreshToken.Unlock()
	return mock.GenerateRefreshTokenFunc()
}

func (mock *tokenManagerMock) GenerateRefreshTokenCalls() []struct{} {
	mock.lockGenerateRefreshToken.RLock()
	calls := mock.calls.GenerateRefreshToken
	mock.lockGenerateRefreshToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) ValidateAccessToken(token string) (auth.AccessClaims, error) {
	if mock.ValidateAccessTokenFunc == nil {
		panic("tokenManagerMock.ValidateAccessTokenFunc: method is nil but tokenManager.ValidateAccessToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidateAccessToken.Lock()
	mock.calls.ValidateAccessToken = append(mock.calls.ValidateAccessToken, callInfo)
	mock.lockValidateAccessToken.Unlock()
	return mock.ValidateAccessTokenFunc(token)
}

func (mock *tokenManagerMock) ValidateAccessTokenCalls() []struct {
	Token string
} {
	mock.lockValidateAccessToken.RLock()
	calls := mock.calls.ValidateAccessToken
	mock.lockValidateAccessToken.RUnlock()
	return calls
}
