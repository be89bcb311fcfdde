package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redmonkez12/bookmark-api/internal/user"
)

var ErrInvalidCredentials = errors.New("credentials incorrect")

// UserStore is the subset of user persistence authentication needs.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

// Service handles authentication business logic
type Service struct {
	users               UserStore
	tokens              TokenService
	hasher              *PasswordHasher
	accessTokenDuration time.Duration
	dummyHash           string
}

func NewService(users UserStore, tokens TokenService, hasher *PasswordHasher, accessTokenDuration time.Duration) (*Service, error) {
	// Unknown emails are checked against this so signin costs the same
	// whether or not the account exists.
	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		users:               users,
		tokens:              tokens,
		hasher:              hasher,
		accessTokenDuration: accessTokenDuration,
		dummyHash:           dummyHash,
	}, nil
}

// Signup creates an account and returns an access token for it.
func (s *Service) Signup(ctx context.Context, email, password string) (*AuthResponse, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, user.NormalizeEmail(email), passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(newUser)
}

// Signin checks the credentials and returns an access token.
func (s *Service) Signin(ctx context.Context, email, password string) (*AuthResponse, error) {
	existingUser, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(existingUser)
}

func (s *Service) issue(u *user.User) (*AuthResponse, error) {
	token, err := s.tokens.CreateToken(u.ID, u.Email, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	return &AuthResponse{AccessToken: token}, nil
}
