// Package storage opens the local SQLite database, applies embedded goose
// migrations, and wires up the repositories backed by it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/humiapp/humi/internal/migrations"
	"github.com/humiapp/humi/internal/repositories/metadata"
	"github.com/humiapp/humi/internal/repositories/queue"
	"github.com/pressly/goose/v3"
)

type Repositories struct {
	Queue    queue.Repository
	Metadata metadata.Repository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn, runs
// migrations, and returns the handle plus ready repositories.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repos := &Repositories{
		Queue:    queue.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
	}
	return db, repos, nil
}
