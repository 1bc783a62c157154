// Package databasetest opens migrated throwaway databases for tests.
package databasetest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todolist/internal/config"
	"github.com/Tomlord1122/todolist/internal/database"
)

// Discard is a logger for tests that do not assert on log output.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLite returns an in-memory sqlite database with all migrations applied.
// The pool is pinned to one connection because every sqlite :memory:
// connection is a separate database.
func NewSQLite(t testing.TB) database.Service {
	t.Helper()

	db, err := database.New(config.DBConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		AutoMigrate:  true,
	}, Discard())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}
