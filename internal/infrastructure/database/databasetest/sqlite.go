// Package databasetest opens throwaway, fully migrated databases for tests.
package databasetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"recovery-chat/internal/infrastructure/database"

	"github.com/stretchr/testify/require"
)

// OpenSQLite returns a migrated SQLite database living in t.TempDir().
// It is closed when the test ends.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.MigrateSQLite(ctx, db))
	return db
}
