package bookmark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookmark-api/internal/database"
)

// ErrNotFound covers both a missing bookmark and one owned by another user.
var ErrNotFound = errors.New("bookmark not found")

// Repository handles bookmark persistence. Every query is scoped by owner.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns the user's bookmarks in insertion order.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]Bookmark, error) {
	var rows []database.Bookmark
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	bookmarks := make([]Bookmark, 0, len(rows))
	for i := range rows {
		bookmarks = append(bookmarks, *mapDBBookmarkToModel(&rows[i]))
	}
	return bookmarks, nil
}

// Create inserts a bookmark owned by userID.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, req CreateBookmarkRequest) (*Bookmark, error) {
	dbBookmark := newDBBookmark(userID, req, time.Now().UTC())

	_, err := r.db.NewInsert().
		Model(dbBookmark).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	return mapDBBookmarkToModel(dbBookmark), nil
}

// CreateMany inserts all bookmarks in one transaction. Either every row is
// stored or none is.
func (r *Repository) CreateMany(ctx context.Context, userID uuid.UUID, reqs []CreateBookmarkRequest) ([]Bookmark, error) {
	if len(reqs) == 0 {
		return []Bookmark{}, nil
	}

	// Spread timestamps so insertion order survives the created_at sort.
	now := time.Now().UTC()
	rows := make([]database.Bookmark, 0, len(reqs))
	for i, req := range reqs {
		rows = append(rows, *newDBBookmark(userID, req, now.Add(time.Duration(i)*time.Microsecond)))
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmarks: %w", err)
	}

	bookmarks := make([]Bookmark, 0, len(rows))
	for i := range rows {
		bookmarks = append(bookmarks, *mapDBBookmarkToModel(&rows[i]))
	}
	return bookmarks, nil
}

// Get returns the bookmark only if userID owns it.
func (r *Repository) Get(ctx context.Context, userID, id uuid.UUID) (*Bookmark, error) {
	dbBookmark := new(database.Bookmark)
	err := r.db.NewSelect().
		Model(dbBookmark).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return mapDBBookmarkToModel(dbBookmark), nil
}

// Edit applies the non-nil fields in one statement filtered by id and owner.
func (r *Repository) Edit(ctx context.Context, userID, id uuid.UUID, req EditBookmarkRequest) (*Bookmark, error) {
	dbBookmark := new(database.Bookmark)
	q := r.db.NewUpdate().
		Model(dbBookmark).
		Set("updated_at = ?", time.Now().UTC())

	if req.Title != nil {
		q = q.Set("title = ?", *req.Title)
	}
	if req.Description != nil {
		q = q.Set("description = ?", *req.Description)
	}
	if req.Link != nil {
		q = q.Set("link = ?", *req.Link)
	}

	result, err := q.
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBBookmarkToModel(dbBookmark), nil
}

// Delete removes the bookmark in one statement filtered by id and owner.
func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Bookmark)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func newDBBookmark(userID uuid.UUID, req CreateBookmarkRequest, now time.Time) *database.Bookmark {
	return &database.Bookmark{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// mapDBBookmarkToModel converts database model to domain model
func mapDBBookmarkToModel(dbb *database.Bookmark) *Bookmark {
	return &Bookmark{
		ID:          dbb.ID,
		UserID:      dbb.UserID,
		Title:       dbb.Title,
		Description: dbb.Description,
		Link:        dbb.Link,
		CreatedAt:   dbb.CreatedAt,
		UpdatedAt:   dbb.UpdatedAt,
	}
}
