package user

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence the profile service needs.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error)
}

// Service handles profile reads and edits for the authenticated user.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetMe returns the user the token was issued for.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.store.GetByID(ctx, userID)
}

// Edit applies a partial profile update. The id comes from the verified
// token, so no separate ownership check is needed.
func (s *Service) Edit(ctx context.Context, userID uuid.UUID, req EditUserRequest) (*User, error) {
	params := UpdateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		params.Email = &email
	}

	return s.store.Update(ctx, userID, params)
}
