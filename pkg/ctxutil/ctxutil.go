// Package ctxutil carries per-request identity between the HTTP middleware,
// the session resolver and the moderation services: the signed-in staff
// member, whether the admin gate let them through, and the request id.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// key is typed by the value it stores so lookups cannot mix types up.
type key[T any] struct{ name string }

func (k key[T]) set(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func (k key[T]) get(ctx context.Context) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

var (
	userIDKey    = key[uuid.UUID]{"user_id"}
	emailKey     = key[string]{"email"}
	adminKey     = key[bool]{"is_admin"}
	requestIDKey = key[string]{"request_id"}
)

// WithUserID records the authenticated principal.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return userIDKey.set(ctx, id)
}

// UserIDFromCtx returns the authenticated principal. uuid.Nil counts as
// absent.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := userIDKey.get(ctx)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithEmail records the principal's sign-in email.
func WithEmail(ctx context.Context, email string) context.Context {
	return emailKey.set(ctx, email)
}

// EmailFromCtx returns the principal's email, or "".
func EmailFromCtx(ctx context.Context) string {
	email, _ := emailKey.get(ctx)
	return email
}

// WithAdmin is set by the admin gate once the caller's role resolved to admin.
func WithAdmin(ctx context.Context, isAdmin bool) context.Context {
	return adminKey.set(ctx, isAdmin)
}

// IsAdminCtx reports whether the admin gate admitted the caller.
func IsAdminCtx(ctx context.Context) bool {
	ok, _ := adminKey.get(ctx)
	return ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return requestIDKey.set(ctx, id)
}

// RequestIDFromCtx returns the request id, or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := requestIDKey.get(ctx)
	return id
}
