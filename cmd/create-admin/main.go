// Command create-admin creates a principal with the admin role, or resets the
// password and role of an existing one. The password is read from the
// ADMIN_PASSWORD environment variable so it stays out of shell history.
//
// Usage:
//
//	ADMIN_PASSWORD=... create-admin --email=dr@clinic.org [--name="Dr. Grey"]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/serenity-backend/internal/app"
	"github.com/heartmarshall/serenity-backend/internal/auth"
	"github.com/heartmarshall/serenity-backend/internal/config"
	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/session"
)

func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "", "full name shown in the console")
	flag.Parse()

	password := os.Getenv("ADMIN_PASSWORD")
	creds := session.SignInInput{Email: *email, Password: password}
	if err := creds.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Usage: ADMIN_PASSWORD=... create-admin --email=user@example.com\n%v\n", err)
		os.Exit(1)
	}

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

	hash, err := auth.NewPasswordHasher(cfg.Auth.PasswordHashCost).Hash(password)
	if err != nil {
		logger.Error("hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var fullName *string
	if n := strings.TrimSpace(*name); n != "" {
		fullName = &n
	}

	accounts := account.New(pool)
	profiles := profile.New(pool)
	normalized := strings.ToLower(strings.TrimSpace(*email))

	var p *domain.Profile
	err = postgres.NewTxManager(pool).RunInTx(ctx, func(ctx context.Context) error {
		acc, err := accounts.Create(ctx, normalized, hash)
		if errors.Is(err, domain.ErrAlreadyExists) {
			acc, err = accounts.GetByEmail(ctx, normalized)
			if err != nil {
				return err
			}
			err = accounts.SetPasswordHash(ctx, acc.ID, hash)
		}
		if err != nil {
			return err
		}

		p, err = profiles.Upsert(ctx, acc.ID, fullName, domain.RoleAdmin)
		return err
	})
	if err != nil {
		logger.Error("create admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Admin %q ready (id %s).\n", p.Email, p.ID)
}
