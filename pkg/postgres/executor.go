package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txKey struct{}

// Executor runs statements either on the pool or on the transaction carried
// by ctx. Repositories never hold a pgx.Tx themselves.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (p *Postgres) GetExecutor(ctx context.Context) Executor {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return p.Pool
}

// InTransaction reports whether ctx already carries a transaction.
func InTransaction(ctx context.Context) bool {
	return txFrom(ctx) != nil
}

func txFrom(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// WithinTransaction runs f with a ctx bound to a fresh transaction and
// commits when f returns nil. On error or panic the transaction is rolled
// back; a failed rollback is joined to the returned error.
//
// Nested calls reuse the outer transaction.
func (p *Postgres) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return f(ctx)
	}

	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("Postgres - WithinTransaction - p.Pool.Begin: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err = f(context.WithValue(ctx, txKey{}, tx)); err != nil {
		// ctx may already be cancelled, the rollback still has to reach the server
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("Postgres - WithinTransaction: %w", errors.Join(err, fmt.Errorf("tx.Rollback: %w", rbErr)))
		}

		return fmt.Errorf("Postgres - WithinTransaction: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("Postgres - WithinTransaction - tx.Commit: %w", err)
	}

	return nil
}
