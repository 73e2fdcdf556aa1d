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
	projectsTable = "projects"

	// Columns
	slugColumn                  = "slug"
	dateColumn                  = "date"
	toolIcon1Column             = "tool_icon1"
	toolIcon2Column             = "tool_icon2"
	imageColumn                 = "image"
	imageAssetIDColumn          = "image_asset_id"
	imageOriginalFilenameColumn = "image_original_filename"
)

var projectColumns = []string{
	idColumn,
	slugColumn,
	titleColumn,
	dateColumn,
	descriptionColumn,
	markdownFileColumn,
	markdownContentColumn,
	toolIcon1Column,
	toolIcon2Column,
	imageColumn,
	imageAssetIDColumn,
	imageOriginalFilenameColumn,
	createdAtColumn,
	updatedAtColumn,
}

type ProjectRepo struct {
	*postgres.Postgres
}

func NewProjectRepo(pg *postgres.Postgres) *ProjectRepo {
	return &ProjectRepo{pg}
}

func scanProject(row scanner) (entity.Project, error) {
	var p entity.Project

	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Date,
		&p.Description,
		&p.MarkdownFile,
		&p.MarkdownContent,
		&p.ToolIcon1,
		&p.ToolIcon2,
		&p.Image.URL,
		&p.Image.AssetID,
		&p.Image.OriginalFilename,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	return p, err
}

// List returns every project, most recently updated first.
func (r *ProjectRepo) List(ctx context.Context) ([]entity.Project, error) {
	sql, args, err := r.Builder.
		Select(projectColumns...).
		From(projectsTable).
		OrderBy(desc(updatedAtColumn)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ProjectRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ProjectRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	projects := make([]entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("ProjectRepo - List - rows.Scan: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ProjectRepo - List - rows.Err: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepo) ListTitles(ctx context.Context) ([]entity.ProjectTitle, error) {
	sql, args, err := r.Builder.
		Select(titleColumn, slugColumn).
		From(projectsTable).
		OrderBy(asc(titleColumn)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ProjectRepo - ListTitles - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ProjectRepo - ListTitles - executor.Query: %w", err)
	}
	defer rows.Close()

	titles := make([]entity.ProjectTitle, 0)
	for rows.Next() {
		var t entity.ProjectTitle
		if err := rows.Scan(&t.Title, &t.Slug); err != nil {
			return nil, fmt.Errorf("ProjectRepo - ListTitles - rows.Scan: %w", err)
		}
		titles = append(titles, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ProjectRepo - ListTitles - rows.Err: %w", err)
	}

	return titles, nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	sql, args, err := r.Builder.
		Select(projectColumns...).
		From(projectsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ProjectRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	p, err := scanProject(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ProjectRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("ProjectRepo - GetByID - executor.QueryRow.Scan: %w", err)
	}

	return &p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	sql, args, err := r.Builder.
		Insert(projectsTable).
		Columns(projectColumns...).
		Values(
			p.ID,
			p.Slug,
			p.Title,
			p.Date,
			p.Description,
			p.MarkdownFile,
			p.MarkdownContent,
			p.ToolIcon1,
			p.ToolIcon2,
			p.Image.URL,
			p.Image.AssetID,
			p.Image.OriginalFilename,
			p.CreatedAt,
			p.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("ProjectRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ProjectRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	sql, args, err := r.Builder.
		Update(projectsTable).
		SetMap(map[string]any{
			slugColumn:                  p.Slug,
			titleColumn:                 p.Title,
			dateColumn:                  p.Date,
			descriptionColumn:           p.Description,
			markdownFileColumn:          p.MarkdownFile,
			markdownContentColumn:       p.MarkdownContent,
			toolIcon1Column:             p.ToolIcon1,
			toolIcon2Column:             p.ToolIcon2,
			imageColumn:                 p.Image.URL,
			imageAssetIDColumn:          p.Image.AssetID,
			imageOriginalFilenameColumn: p.Image.OriginalFilename,
			updatedAtColumn:             p.UpdatedAt,
		}).
		Where(squirrel.Eq{idColumn: p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ProjectRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ProjectRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ProjectRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(projectsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ProjectRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ProjectRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ProjectRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}
