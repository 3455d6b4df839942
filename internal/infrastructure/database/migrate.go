package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Statements returns the schema statements for the given driver ("postgres" or "sqlite").
// Every statement is idempotent, so applying the schema on each startup is safe.
func Statements(driver string) ([]string, error) {
	raw, err := migrations.ReadFile("migrations/" + driver + ".sql")
	if err != nil {
		return nil, fmt.Errorf("migrate: unknown driver %q: %w", driver, err)
	}
	var stmts []string
	for _, part := range strings.Split(string(raw), ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}

// MigratePostgres applies the Postgres schema.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	stmts, err := Statements(DriverPostgres)
	if err != nil {
		return err
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}

// MigrateSQLite applies the SQLite schema.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts, err := Statements(DriverSQLite)
	if err != nil {
		return err
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}
	return nil
}
