package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"people_api/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	sqliteDriverName   = "sqlite"
	postgresDriverName = "pgx"
	migrationsDir      = "migrations"
)

var errEmptyDSN = errors.New("database url is empty")

// ParseDSN picks the driver for a connection string. postgres:// and postgresql:// URLs go to pgx,
// sqlite://path and anything else is treated as a SQLite file path (or file: URI).
func ParseDSN(dsn string) (driver, source string, dialect repository.Dialect, err error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", "", errEmptyDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgresDriverName, dsn, repository.DialectPostgres, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqliteDriverName, strings.TrimPrefix(dsn, "sqlite://"), repository.DialectSQLite, nil
	default:
		return sqliteDriverName, dsn, repository.DialectSQLite, nil
	}
}

// InitDB opens the database behind dsn, applies connection settings and runs pending migrations.
// log receives goose's migration output; nil silences it.
func InitDB(ctx context.Context, dsn string, log goose.Logger) (*sql.DB, repository.Dialect, error) {
	driver, source, dialect, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, "", fmt.Errorf("open %s database: %w", dialect, err)
	}

	if dialect == repository.DialectSQLite {
		if err := configureSQLite(ctx, db); err != nil {
			_ = db.Close()
			return nil, "", err
		}
	}

	// Fail fast if the DB cannot be reached
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", dialect, err)
	}

	if err := migrate(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, "", err
	}

	return db, dialect, nil
}

// configureSQLite applies conservative pool settings and reliability pragmas.
func configureSQLite(ctx context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}
	return nil
}

// migrate applies the embedded goose migrations for the given dialect.
func migrate(ctx context.Context, db *sql.DB, dialect repository.Dialect, log goose.Logger) error {
	if log == nil {
		log = goose.NopLogger()
	}
	goose.SetLogger(log)
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
