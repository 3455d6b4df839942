package databasetest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"recovery-chat/internal/infrastructure/database"
)

// OpenPostgres returns a pool bound to a fresh, migrated schema in the
// database named by DB_URL. The schema is dropped when the test ends.
// The test is skipped unless DB_URL points at Postgres.
func OpenPostgres(t testing.TB) *pgxpool.Pool {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("DB_URL"))
	if !strings.HasPrefix(dsn, "postgres") {
		t.Skip("DB_URL is not a Postgres DSN")
	}
	ctx := context.Background()
	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := database.Connect(ctx, dsn, database.WithMaxConns(1))
	require.NoError(t, err)
	_, err = admin.Exec(ctx, `CREATE SCHEMA `+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), `DROP SCHEMA `+schema+` CASCADE`)
		admin.Close()
	})

	pool, err := database.Connect(ctx, dsn, func(cfg *pgxpool.Config) {
		cfg.ConnConfig.RuntimeParams["search_path"] = schema
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.MigratePostgres(ctx, pool))
	return pool
}
