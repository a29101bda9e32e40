package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/account"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/booking"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/inquiry"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/stats"
	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/serenity-backend/internal/auth"
	"github.com/heartmarshall/serenity-backend/internal/config"
	"github.com/heartmarshall/serenity-backend/internal/service/dashboard"
	"github.com/heartmarshall/serenity-backend/internal/service/intake"
	"github.com/heartmarshall/serenity-backend/internal/service/moderation"
	"github.com/heartmarshall/serenity-backend/internal/service/session"
	"github.com/heartmarshall/serenity-backend/internal/telemetry"
	"github.com/heartmarshall/serenity-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to the
// database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		BuildInfo(),
		slog.String("log_level", cfg.Log.Level),
	)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, Version, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("shutdown tracing", slog.String("error", err.Error()))
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: connect database: %w", err)
	}
	defer pool.Close()

	if !cfg.Database.SkipMigrations {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
	}

	handler, sessions := buildHandler(cfg, pool, logger)

	unsubscribe := sessions.Subscribe(func(ev session.Event) {
		logger.Info("auth state changed",
			slog.String("event", string(ev.Type)),
			slog.String("user_id", ev.Principal.ID.String()),
		)
	})
	defer unsubscribe()

	return serve(ctx, cfg.Server, handler, logger)
}

// buildHandler wires repositories, services and the HTTP router.
func buildHandler(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, *session.Service) {
	accounts := account.New(pool)
	profiles := profile.New(pool)
	tokens := token.New(pool)
	inquiries := inquiry.New(pool)
	bookings := booking.New(pool)
	statsRepo := stats.New(pool)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.PasswordHashCost)

	sessions := session.NewService(logger, accounts, profiles, tokens, postgres.NewTxManager(pool), jwt, hasher, cfg.Auth)

	router := rest.NewRouter(rest.RouterDeps{
		Logger:       logger,
		CORS:         cfg.CORS,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Sessions:     sessions,
		Profiles:     profiles,
		Session:      rest.NewSessionHandler(sessions, logger),
		Admin: rest.NewAdminHandler(
			moderation.NewInquiries(logger, inquiries),
			moderation.NewBookings(logger, bookings),
			moderation.NewProfiles(logger, profiles),
			dashboard.NewService(logger, statsRepo),
			logger,
		),
		Intake: rest.NewIntakeHandler(intake.NewService(logger, inquiries, bookings), logger),
		Health: rest.NewHealthHandler(pool, Version),
	})

	return otelhttp.NewHandler(router, cfg.Telemetry.ServiceName), sessions
}

// serve runs the HTTP server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
