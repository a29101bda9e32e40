//go:build integration

// Package testhelper runs the clinic schema in a throwaway PostgreSQL
// container for integration tests.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/config"
)

const (
	pgImage    = "postgres:17-alpine"
	pgUser     = "serenity"
	pgPassword = "serenity"
	pgDatabase = "serenity_test"
)

var (
	containerOnce sync.Once
	containerDSN  string
	containerErr  error
)

// SetupTestDB returns a pool on a migrated clinic database. The container is
// shared by every test in the binary; each caller gets its own pool, closed
// on cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	containerOnce.Do(func() {
		containerDSN, containerErr = bootstrap()
	})
	if containerErr != nil {
		t.Fatalf("testhelper: bootstrap database: %v", containerErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbConfig(containerDSN))
	if err != nil {
		t.Fatalf("testhelper: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// bootstrap starts the container and applies the embedded migrations through
// the same code path the server uses on startup.
func bootstrap() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// Postgres logs readiness twice: once for the init server, once for the real one.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	endpoint, err := c.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("resolve postgres endpoint: %w", err)
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPassword, endpoint, pgDatabase)

	pool, err := postgres.NewPool(ctx, dbConfig(dsn))
	if err != nil {
		return "", err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return "", err
	}

	return dsn, nil
}

func dbConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		DSN:             dsn,
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ApplicationName: "serenity-integration",
		ConnectAttempts: 10,
		ConnectBackoff:  200 * time.Millisecond,
	}
}
