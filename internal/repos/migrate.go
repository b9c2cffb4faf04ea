package repos

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// gooseDialect returns the goose dialect and migrations directory for a driver name.
func gooseDialect(driver string) (dialect, dir string, err error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	case DriverPostgres:
		return "pgx", "migrations/postgres", nil
	}
	return "", "", fmt.Errorf("no migrations for driver %q", driver)
}

// Migrate runs command ("up", "down" or "status") against the users schema.
func Migrate(ctx context.Context, db *sqlx.DB, command string) error {
	dialect, dir, err := gooseDialect(db.DriverName())
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	switch command {
	case MigrateUp:
		return goose.UpContext(ctx, db.DB, dir)
	case MigrateDown:
		return goose.DownContext(ctx, db.DB, dir)
	case MigrateStatus:
		return goose.StatusContext(ctx, db.DB, dir)
	}
	return fmt.Errorf("unknown migrate command %q", command)
}
