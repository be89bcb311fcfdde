package bookmark

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookmark-api/internal/database/dbtest"
	"github.com/redmonkez12/bookmark-api/internal/user"
)

func strPtr(s string) *string { return &s }

func createUser(t *testing.T, db *bun.DB, email string) uuid.UUID {
	t.Helper()
	u, err := user.NewRepository(db).Create(context.Background(), email, "hash")
	require.NoError(t, err)
	return u.ID
}

func TestRepositoryListEmpty(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")

	list, err := repo.List(context.Background(), owner)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRepositoryCreateListGet(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")
	ctx := context.Background()

	first, err := repo.Create(ctx, owner, CreateBookmarkRequest{
		Title:       "First Bookmark",
		Description: strPtr("First Bookmark description"),
		Link:        "https://www.youtube.com/watch?v=d6WC5n9G_sM",
	})
	require.NoError(t, err)
	assert.Equal(t, owner, first.UserID)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second, err := repo.Create(ctx, owner, CreateBookmarkRequest{Title: "Second", Link: "https://example.com"})
	require.NoError(t, err)
	assert.Nil(t, second.Description)

	list, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	got, err := repo.Get(ctx, owner, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Bookmark", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "First Bookmark description", *got.Description)
}

func TestRepositoryCreateRequiresExistingUser(t *testing.T) {
	repo := NewRepository(dbtest.New(t))

	_, err := repo.Create(context.Background(), uuid.New(), CreateBookmarkRequest{Title: "t", Link: "https://example.com"})
	assert.Error(t, err)
}

func TestRepositoryEditPartial(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")
	ctx := context.Background()

	created, err := repo.Create(ctx, owner, CreateBookmarkRequest{Title: "Old", Link: "https://example.com"})
	require.NoError(t, err)

	edited, err := repo.Edit(ctx, owner, created.ID, EditBookmarkRequest{Description: strPtr("new description")})
	require.NoError(t, err)
	assert.Equal(t, "Old", edited.Title)
	assert.Equal(t, "https://example.com", edited.Link)
	require.NotNil(t, edited.Description)
	assert.Equal(t, "new description", *edited.Description)
	assert.False(t, edited.UpdatedAt.Before(created.UpdatedAt))

	got, err := repo.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new description", *got.Description)
}

func TestRepositoryOwnerIsolation(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")
	intruder := createUser(t, db, "b@example.com")
	ctx := context.Background()

	created, err := repo.Create(ctx, owner, CreateBookmarkRequest{Title: "Mine", Link: "https://example.com"})
	require.NoError(t, err)

	list, err := repo.List(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Get(ctx, intruder, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Edit(ctx, intruder, created.ID, EditBookmarkRequest{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, intruder, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := repo.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)
}

func TestRepositoryDelete(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")
	ctx := context.Background()

	created, err := repo.Create(ctx, owner, CreateBookmarkRequest{Title: "Gone", Link: "https://example.com"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, owner, created.ID))

	_, err = repo.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, owner, created.ID), ErrNotFound)
}

func TestRepositoryCreateMany(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")
	ctx := context.Background()

	stored, err := repo.CreateMany(ctx, owner, []CreateBookmarkRequest{
		{Title: "one", Link: "https://one.example.com"},
		{Title: "two", Link: "https://two.example.com"},
		{Title: "three", Link: "https://three.example.com"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 3)

	list, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{list[0].Title, list[1].Title, list[2].Title})

	empty, err := repo.CreateMany(ctx, owner, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositoryDeleteCascadesWithUser(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	owner := createUser(t, db, "a@example.com")
	ctx := context.Background()

	_, err := repo.Create(ctx, owner, CreateBookmarkRequest{Title: "t", Link: "https://example.com"})
	require.NoError(t, err)

	_, err = db.NewDelete().TableExpr("users").Where("id = ?", owner).Exec(ctx)
	require.NoError(t, err)

	list, err := repo.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}
