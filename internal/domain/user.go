package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an authenticated identity issued by the auth subsystem.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// IsZero reports whether p carries no identity.
func (p Principal) IsZero() bool {
	return p.ID == uuid.Nil
}

// Account is the credential record behind a Principal.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the narrow identity view of the account.
func (a Account) Principal() Principal {
	return Principal{ID: a.ID, Email: a.Email}
}

// Profile is the application-level record carrying the role used for
// authorization. Its ID equals the owning principal's ID.
type Profile struct {
	ID        uuid.UUID
	Email     string
	FullName  *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName returns the full name or the "No name provided" placeholder.
func (p Profile) DisplayName() string {
	return orPlaceholder(p.FullName, PlaceholderNoName)
}

func (p Profile) RecordID() uuid.UUID { return p.ID }

func (p Profile) SearchFields() []string {
	return []string{derefOrEmpty(p.FullName), p.Email}
}

func (p Profile) FilterKey() string { return p.Role.String() }

// RefreshToken represents a hashed refresh token stored in the database.
// One row is one signed-in session.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
