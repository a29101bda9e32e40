package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is what the clinic repositories run SQL against: the shared pool,
// the transaction opened by TxManager, or a pgxmock pool in unit tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Builder emits $n placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type activeTx struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, activeTx{}, tx)
}

// QuerierFromCtx picks the transaction opened by RunInTx when ctx carries one,
// so a repository call inside e.g. token rotation joins it. Otherwise db is
// used.
func QuerierFromCtx(ctx context.Context, db Querier) Querier {
	if tx, ok := ctx.Value(activeTx{}).(pgx.Tx); ok {
		return tx
	}
	return db
}
