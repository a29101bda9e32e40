// Command cleanup-tokens deletes expired and revoked sessions. It is intended
// to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/serenity-backend/internal/app"
	"github.com/heartmarshall/serenity-backend/internal/auth"
	"github.com/heartmarshall/serenity-backend/internal/config"
	"github.com/heartmarshall/serenity-backend/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := session.NewService(
		logger,
		account.New(pool),
		profile.New(pool),
		token.New(pool),
		postgres.NewTxManager(pool),
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		auth.NewPasswordHasher(cfg.Auth.PasswordHashCost),
		cfg.Auth,
	)

	count, err := svc.CleanupExpiredSessions(ctx)
	if err != nil {
		logger.Error("cleanup sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Deleted %d expired/revoked sessions.\n", count)
}
