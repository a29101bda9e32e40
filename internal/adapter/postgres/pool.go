package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/serenity-backend/internal/config"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// NewPool opens a connection pool and waits until the database answers.
// Startup pings are retried with linear backoff so the API can boot before
// Postgres in compose setups.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: parse dsn: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	if cfg.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: create pool: %w", err)
	}

	if err := waitReady(ctx, pool, cfg.ConnectAttempts, cfg.ConnectBackoff); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// waitReady pings db up to attempts times, sleeping backoff*n after the n-th
// failure.
func waitReady(ctx context.Context, db pinger, attempts int, backoff time.Duration) error {
	attempts = max(attempts, 1)

	var err error
	for n := 1; n <= attempts; n++ {
		if err = db.Ping(ctx); err == nil {
			return nil
		}
		if n == attempts {
			break
		}

		timer := time.NewTimer(backoff * time.Duration(n))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("postgres.NewPool: wait for database: %w", ctx.Err())
		case <-timer.C:
		}
	}
	return fmt.Errorf("postgres.NewPool: ping after %d attempts: %w", attempts, err)
}
