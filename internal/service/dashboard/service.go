// Package dashboard serves the admin overview counters.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/pkg/ctxutil"
)

// Window is the look-back period of the windowed counters.
const Window = 30 * 24 * time.Hour

type statsRepo interface {
	Dashboard(ctx context.Context, since time.Time) (domain.DashboardStats, error)
}

// Service implements dashboard statistics.
type Service struct {
	log   *slog.Logger
	stats statsRepo
	now   func() time.Time
}

// NewService creates a new dashboard service instance.
func NewService(logger *slog.Logger, stats statsRepo) *Service {
	return &Service{
		log:   logger.With("service", "dashboard"),
		stats: stats,
		now:   time.Now,
	}
}

// Stats returns the dashboard counters for the last 30 days (admin only).
func (s *Service) Stats(ctx context.Context) (domain.DashboardStats, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.DashboardStats{}, domain.ErrForbidden
	}

	stats, err := s.stats.Dashboard(ctx, s.now().Add(-Window))
	if err != nil {
		s.log.ErrorContext(ctx, "dashboard stats failed", slog.String("error", err.Error()))
		return domain.DashboardStats{}, fmt.Errorf("dashboard.Stats: %w", err)
	}
	return stats, nil
}
