// Command promote sets the role of an existing user by email address.
// It is used to bootstrap the first admin or to demote one out of band.
//
// Usage:
//
//	promote --email=user@example.com [--role=admin]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/serenity-backend/internal/app"
	"github.com/heartmarshall/serenity-backend/internal/config"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	role := flag.String("role", string(domain.RoleAdmin), "role to assign: admin or user")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--role=admin]")
		os.Exit(1)
	}
	r := domain.Role(*role)
	if !r.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
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

	p, err := profile.New(pool).SetRoleByEmail(ctx, *email, r)
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No user found with email %q.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("update role", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("User %q now has role %q.\n", p.Email, p.Role)
}
