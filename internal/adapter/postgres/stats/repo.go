// Package stats computes dashboard aggregates using PostgreSQL.
package stats

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/serenity-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// Repo runs the dashboard count queries. The counts are issued concurrently,
// so Repo always uses the pool and never a transaction from the context.
type Repo struct {
	db postgres.Querier
}

// New creates a new stats repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Dashboard returns the six dashboard counters. Windowed counters include
// rows created at or after since.
func (r *Repo) Dashboard(ctx context.Context, since time.Time) (domain.DashboardStats, error) {
	var s domain.DashboardStats

	g, gctx := errgroup.WithContext(ctx)

	counts := []struct {
		dst   *int
		table string
		where sq.Sqlizer
	}{
		{&s.InquiriesLast30Days, "inquiries", sq.Expr("created_at >= ?", since)},
		{&s.NewInquiries, "inquiries", sq.Eq{"status": domain.InquiryStatusNew.String()}},
		{&s.BookingsLast30Days, "session_bookings", sq.Expr("created_at >= ?", since)},
		{&s.PendingBookings, "session_bookings", sq.Eq{"status": domain.BookingStatusPending.String()}},
		{&s.NewUsersLast30Days, "profiles", sq.Expr("created_at >= ?", since)},
		{&s.TotalUsers, "profiles", nil},
	}

	for _, c := range counts {
		g.Go(func() error {
			n, err := r.count(gctx, c.table, c.where)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}
	return s, nil
}

func (r *Repo) count(ctx context.Context, table string, where sq.Sqlizer) (int, error) {
	b := postgres.Builder.Select("count(*)").From(table)
	if where != nil {
		b = b.Where(where)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("stats.count %s: build query: %w", table, err)
	}

	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, table, uuid.Nil)
	}
	return n, nil
}
