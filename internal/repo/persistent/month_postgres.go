package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/portfolio-dashboard/internal/entity"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/postgres"
	"github.com/andreyxaxa/portfolio-dashboard/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	monthsTable = "months"

	// Columns
	yearColumn     = "year"
	monthNumColumn = "month_num"
)

var monthColumns = []string{idColumn, yearColumn, monthNumColumn}

type MonthRepo struct {
	*postgres.Postgres
}

func NewMonthRepo(pg *postgres.Postgres) *MonthRepo {
	return &MonthRepo{pg}
}

// GetOrCreate returns the month row for (year, monthNum), inserting it when
// absent. The upsert keeps concurrent callers on the same row.
func (r *MonthRepo) GetOrCreate(ctx context.Context, year, monthNum int) (*entity.Month, error) {
	if !entity.ValidMonthNum(monthNum) {
		return nil, fmt.Errorf("MonthRepo - GetOrCreate: %w", errs.ErrInvalidMonth)
	}

	sql, args, err := r.Builder.
		Insert(monthsTable).
		Columns(monthColumns...).
		Values(uuid.New(), year, monthNum).
		Suffix("ON CONFLICT (year, month_num) DO UPDATE SET year = EXCLUDED.year RETURNING id, year, month_num").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - GetOrCreate - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var m entity.Month
	err = executor.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.Year, &m.MonthNum)
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - GetOrCreate - executor.QueryRow.Scan: %w", err)
	}

	return &m, nil
}

func (r *MonthRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Month, error) {
	sql, args, err := r.Builder.
		Select(monthColumns...).
		From(monthsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var m entity.Month
	err = executor.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.Year, &m.MonthNum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("MonthRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("MonthRepo - GetByID - executor.QueryRow.Scan: %w", err)
	}

	return &m, nil
}

func (r *MonthRepo) list(ctx context.Context, q squirrel.SelectBuilder, method string) ([]entity.Month, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - %s - r.Builder.ToSql: %w", method, err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - %s - executor.Query: %w", method, err)
	}
	defer rows.Close()

	months := make([]entity.Month, 0)
	for rows.Next() {
		var m entity.Month
		if err := rows.Scan(&m.ID, &m.Year, &m.MonthNum); err != nil {
			return nil, fmt.Errorf("MonthRepo - %s - rows.Scan: %w", method, err)
		}
		months = append(months, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MonthRepo - %s - rows.Err: %w", method, err)
	}

	return months, nil
}

// List orders by year descending, then month ascending.
func (r *MonthRepo) List(ctx context.Context) ([]entity.Month, error) {
	q := r.Builder.
		Select(monthColumns...).
		From(monthsTable).
		OrderBy(desc(yearColumn), asc(monthNumColumn))

	return r.list(ctx, q, "List")
}

func (r *MonthRepo) ListByYear(ctx context.Context, year int) ([]entity.Month, error) {
	q := r.Builder.
		Select(monthColumns...).
		From(monthsTable).
		Where(squirrel.Eq{yearColumn: year}).
		OrderBy(asc(monthNumColumn))

	return r.list(ctx, q, "ListByYear")
}

func (r *MonthRepo) AvailableYears(ctx context.Context) ([]int, error) {
	sql, args, err := r.Builder.
		Select(yearColumn).
		Distinct().
		From(monthsTable).
		OrderBy(desc(yearColumn)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - AvailableYears - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("MonthRepo - AvailableYears - executor.Query: %w", err)
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("MonthRepo - AvailableYears - rows.Scan: %w", err)
		}
		years = append(years, y)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MonthRepo - AvailableYears - rows.Err: %w", err)
	}

	return years, nil
}
