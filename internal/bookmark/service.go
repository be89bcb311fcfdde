package bookmark

import (
	"context"

	"github.com/google/uuid"
)

// Store is the bookmark persistence the service needs. Implementations must
// scope every call by userID.
type Store interface {
	List(ctx context.Context, userID uuid.UUID) ([]Bookmark, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateBookmarkRequest) (*Bookmark, error)
	CreateMany(ctx context.Context, userID uuid.UUID, reqs []CreateBookmarkRequest) ([]Bookmark, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Bookmark, error)
	Edit(ctx context.Context, userID, id uuid.UUID, req EditBookmarkRequest) (*Bookmark, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service implements bookmark CRUD for a single authenticated owner.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Bookmark, error) {
	return s.store.List(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateBookmarkRequest) (*Bookmark, error) {
	return s.store.Create(ctx, userID, req)
}

// Import stores a batch of bookmarks for userID atomically.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, reqs []CreateBookmarkRequest) ([]Bookmark, error) {
	return s.store.CreateMany(ctx, userID, reqs)
}

// Get returns ErrNotFound when the bookmark does not exist or belongs to
// someone else.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Bookmark, error) {
	return s.store.Get(ctx, userID, id)
}

func (s *Service) Edit(ctx context.Context, userID, id uuid.UUID, req EditBookmarkRequest) (*Bookmark, error) {
	return s.store.Edit(ctx, userID, id, req)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.store.Delete(ctx, userID, id)
}
