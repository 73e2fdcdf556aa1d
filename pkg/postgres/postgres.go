package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/retry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	_defaultMaxPoolSize  = 1
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
)

// Pool is the subset of *pgxpool.Pool the repositories rely on.
type Pool interface {
	Executor
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

type Postgres struct {
	maxPoolSize  int
	connAttempts int
	connTimeout  time.Duration

	Builder squirrel.StatementBuilderType
	Pool    Pool
}

// New opens a pool and pings it, retrying while the database is still
// starting up.
func New(ctx context.Context, url string, opts ...Option) (*Postgres, error) {
	pg := &Postgres{
		maxPoolSize:  _defaultMaxPoolSize,
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		Builder:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	for _, opt := range opts {
		opt(pg)
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("Postgres - New - pgxpool.ParseConfig: %w", err)
	}

	poolConfig.MaxConns = int32(pg.maxPoolSize) //nolint:gosec // pool size comes from config

	err = retry.Connect(ctx, "Postgres", pg.connAttempts, pg.connTimeout, func(ctx context.Context) error {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()

			return fmt.Errorf("pool.Ping: %w", err)
		}

		pg.Pool = pool

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Postgres - New: %w", err)
	}

	return pg, nil
}

// NewWithPool wraps an already opened pool (tests use a pgxmock pool here).
func NewWithPool(pool Pool) *Postgres {
	return &Postgres{
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		Pool:    pool,
	}
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
