package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver for goose
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded goose migrations found at the root of fsys.
func Migrate(ctx context.Context, url string, fsys fs.FS) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("Postgres - Migrate - sql.Open: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(fsys)

	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("Postgres - Migrate - goose.SetDialect: %w", err)
	}

	if err = goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("Postgres - Migrate - goose.UpContext: %w", err)
	}

	return nil
}
