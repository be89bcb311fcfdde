package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/bookmark-api/internal/database"
	"github.com/redmonkez12/bookmark-api/internal/database/dbtest"
)

func TestCreateSchemaEnforcesUniqueEmail(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	now := time.Now().UTC()

	first := &database.User{ID: uuid.New(), Email: "dup@example.com", PasswordHash: "x", CreatedAt: now, UpdatedAt: now}
	_, err := db.NewInsert().Model(first).Exec(ctx)
	require.NoError(t, err)

	second := &database.User{ID: uuid.New(), Email: "dup@example.com", PasswordHash: "y", CreatedAt: now, UpdatedAt: now}
	_, err = db.NewInsert().Model(second).Exec(ctx)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, database.CreateSchema(context.Background(), db))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("connection refused")))
	assert.True(t, database.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
}

func TestMigrationFilesArePaired(t *testing.T) {
	files, err := database.MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
	assert.Equal(t, 2, ups)
}
