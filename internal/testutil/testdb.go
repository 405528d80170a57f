package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/effortlog/internal/db"
)

// NewTestDB opens a migrated in-memory store that lives for the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewFileTestDB opens a migrated store under t.TempDir. Every pooled
// connection sees the same WAL-backed file, which :memory: cannot give.
func NewFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "effortlog.db"))
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening effortlog store at %s", path)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW runs transactions against an effortlog test store.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
