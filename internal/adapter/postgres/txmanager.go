package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner opens transactions; *pgxpool.Pool and pgxmock pools satisfy it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager groups repository writes that must land together, such as
// revoking a refresh token and storing its replacement, or creating an
// admin account with its profile.
type TxManager struct {
	db TxBeginner
}

func NewTxManager(db TxBeginner) *TxManager {
	return &TxManager{db: db}
}

// RunInTx calls fn with a context bound to a new transaction and commits when
// fn returns nil. Any error or panic from fn rolls back. Calls do not nest: an
// inner RunInTx opens its own transaction.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
