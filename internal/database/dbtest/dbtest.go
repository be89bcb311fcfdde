// Package dbtest provides throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookmark-api/internal/database"
)

// New returns an isolated in-memory database with the schema applied.
// It is closed when the test finishes.
func New(tb testing.TB) *bun.DB {
	tb.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.OpenSQLite(dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := database.CreateSchema(context.Background(), db); err != nil {
		tb.Fatalf("create schema: %v", err)
	}

	return db
}
