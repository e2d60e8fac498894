// Package dbtest provisions migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventreg/internal/infrastructure/database"
)

// URL returns a sqlite:// URL for a fresh file in t's temp dir.
func URL(t testing.TB) string {
	t.Helper()
	return "sqlite://" + filepath.ToSlash(filepath.Join(t.TempDir(), "test.db"))
}

// Open migrates a fresh SQLite database and closes it when t finishes.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	url := URL(t)
	logger := zap.NewNop()
	require.NoError(t, database.RunMigrations(url, logger))
	db, err := database.Open(context.Background(), url, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
