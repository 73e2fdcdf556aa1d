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
	journeyTable = "journey"

	// Columns
	monthIDColumn                = "month_id"
	typeIcon1Column              = "type_icon1"
	typeIcon2Column              = "type_icon2"
	actionColumn                 = "action"
	projectSlugColumn            = "project_slug"
	image1Column                 = "image_1"
	image1AssetIDColumn          = "image_1_asset_id"
	image1OriginalFilenameColumn = "image_1_original_filename"
	image2Column                 = "image_2"
	image2AssetIDColumn          = "image_2_asset_id"
	image2OriginalFilenameColumn = "image_2_original_filename"
)

var journeyColumns = []string{
	idColumn,
	monthIDColumn,
	titleColumn,
	descriptionColumn,
	typeIcon1Column,
	typeIcon2Column,
	actionColumn,
	projectSlugColumn,
	markdownFileColumn,
	markdownContentColumn,
	image1Column,
	image1AssetIDColumn,
	image1OriginalFilenameColumn,
	image2Column,
	image2AssetIDColumn,
	image2OriginalFilenameColumn,
	createdAtColumn,
	updatedAtColumn,
}

type JourneyRepo struct {
	*postgres.Postgres
}

func NewJourneyRepo(pg *postgres.Postgres) *JourneyRepo {
	return &JourneyRepo{pg}
}

func scanJourney(row scanner) (entity.JourneyEntry, error) {
	var e entity.JourneyEntry

	err := row.Scan(
		&e.ID,
		&e.MonthID,
		&e.Title,
		&e.Description,
		&e.TypeIcon1,
		&e.TypeIcon2,
		&e.Action,
		&e.ProjectSlug,
		&e.MarkdownFile,
		&e.MarkdownContent,
		&e.Image1.URL,
		&e.Image1.AssetID,
		&e.Image1.OriginalFilename,
		&e.Image2.URL,
		&e.Image2.AssetID,
		&e.Image2.OriginalFilename,
		&e.CreatedAt,
		&e.UpdatedAt,
	)

	return e, err
}

func (r *JourneyRepo) list(ctx context.Context, q squirrel.SelectBuilder, method string) ([]entity.JourneyEntry, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("JourneyRepo - %s - r.Builder.ToSql: %w", method, err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("JourneyRepo - %s - executor.Query: %w", method, err)
	}
	defer rows.Close()

	entries := make([]entity.JourneyEntry, 0)
	for rows.Next() {
		e, err := scanJourney(rows)
		if err != nil {
			return nil, fmt.Errorf("JourneyRepo - %s - rows.Scan: %w", method, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("JourneyRepo - %s - rows.Err: %w", method, err)
	}

	return entries, nil
}

// List returns every entry, newest first.
func (r *JourneyRepo) List(ctx context.Context) ([]entity.JourneyEntry, error) {
	q := r.Builder.
		Select(journeyColumns...).
		From(journeyTable).
		OrderBy(desc(createdAtColumn))

	return r.list(ctx, q, "List")
}

func (r *JourneyRepo) ListByMonthID(ctx context.Context, monthID uuid.UUID) ([]entity.JourneyEntry, error) {
	q := r.Builder.
		Select(journeyColumns...).
		From(journeyTable).
		Where(squirrel.Eq{monthIDColumn: monthID}).
		OrderBy(desc(createdAtColumn))

	return r.list(ctx, q, "ListByMonthID")
}

// ListByYear returns the entries of a year, latest month first.
func (r *JourneyRepo) ListByYear(ctx context.Context, year int) ([]entity.JourneyEntry, error) {
	q := r.Builder.
		Select(prefixed("j", journeyColumns)...).
		From(journeyTable + " j").
		Join(monthsTable + " m ON m.id = j." + monthIDColumn).
		Where(squirrel.Eq{"m." + yearColumn: year}).
		OrderBy(desc("m."+monthNumColumn), desc("j."+createdAtColumn))

	return r.list(ctx, q, "ListByYear")
}

func (r *JourneyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.JourneyEntry, error) {
	sql, args, err := r.Builder.
		Select(journeyColumns...).
		From(journeyTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("JourneyRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	e, err := scanJourney(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("JourneyRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("JourneyRepo - GetByID - executor.QueryRow.Scan: %w", err)
	}

	return &e, nil
}

func (r *JourneyRepo) Create(ctx context.Context, e *entity.JourneyEntry) error {
	sql, args, err := r.Builder.
		Insert(journeyTable).
		Columns(journeyColumns...).
		Values(
			e.ID,
			e.MonthID,
			e.Title,
			e.Description,
			e.TypeIcon1,
			e.TypeIcon2,
			e.Action,
			e.ProjectSlug,
			e.MarkdownFile,
			e.MarkdownContent,
			e.Image1.URL,
			e.Image1.AssetID,
			e.Image1.OriginalFilename,
			e.Image2.URL,
			e.Image2.AssetID,
			e.Image2.OriginalFilename,
			e.CreatedAt,
			e.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("JourneyRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JourneyRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *JourneyRepo) Update(ctx context.Context, e *entity.JourneyEntry) error {
	sql, args, err := r.Builder.
		Update(journeyTable).
		SetMap(map[string]any{
			monthIDColumn:                e.MonthID,
			titleColumn:                  e.Title,
			descriptionColumn:            e.Description,
			typeIcon1Column:              e.TypeIcon1,
			typeIcon2Column:              e.TypeIcon2,
			actionColumn:                 e.Action,
			projectSlugColumn:            e.ProjectSlug,
			markdownFileColumn:           e.MarkdownFile,
			markdownContentColumn:        e.MarkdownContent,
			image1Column:                 e.Image1.URL,
			image1AssetIDColumn:          e.Image1.AssetID,
			image1OriginalFilenameColumn: e.Image1.OriginalFilename,
			image2Column:                 e.Image2.URL,
			image2AssetIDColumn:          e.Image2.AssetID,
			image2OriginalFilenameColumn: e.Image2.OriginalFilename,
			updatedAtColumn:              e.UpdatedAt,
		}).
		Where(squirrel.Eq{idColumn: e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("JourneyRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JourneyRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("JourneyRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *JourneyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(journeyTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("JourneyRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("JourneyRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("JourneyRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}
