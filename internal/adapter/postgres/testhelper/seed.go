//go:build integration

package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedPrincipal creates a principal with the given password hash and a
// profile with the given role. Returns the stored profile.
func SeedPrincipal(t *testing.T, pool *pgxpool.Pool, role domain.Role, passwordHash string) domain.Profile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	name := "Test " + suffix
	p := domain.Profile{
		Email:    "principal-" + suffix + "@serenity.test",
		FullName: &name,
		Role:     role,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO principals (email, password_hash) VALUES ($1, $2) RETURNING id`,
		p.Email, passwordHash,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedPrincipal insert principal: %v", err)
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO profiles (id, full_name, role) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		p.ID, p.FullName, string(p.Role),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedPrincipal insert profile: %v", err)
	}

	return p
}

// SeedInquiry inserts an inquiry with the given name and status.
func SeedInquiry(t *testing.T, pool *pgxpool.Pool, name string, status domain.InquiryStatus) domain.Inquiry {
	t.Helper()

	inq := domain.Inquiry{
		Name:    name,
		Email:   name + "-" + uniqueSuffix() + "@example.com",
		Message: "Looking for information about programs",
		Status:  status,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO inquiries (name, email, message, status) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		inq.Name, inq.Email, inq.Message, string(inq.Status),
	).Scan(&inq.ID, &inq.CreatedAt, &inq.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedInquiry: %v", err)
	}

	return inq
}

// SeedBooking inserts a booking with the given name, session type and status.
func SeedBooking(t *testing.T, pool *pgxpool.Pool, name, sessionType string, status domain.BookingStatus) domain.Booking {
	t.Helper()

	b := domain.Booking{
		Name:        name,
		Email:       name + "-" + uniqueSuffix() + "@example.com",
		SessionType: sessionType,
		Status:      status,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO session_bookings (name, email, session_type, status) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.Name, b.Email, b.SessionType, string(b.Status),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedBooking: %v", err)
	}

	return b
}
