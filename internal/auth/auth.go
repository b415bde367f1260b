package auth

import (
	"context"
	"errors"

	"github.com/lukasmoe/recipebox/internal/database"
)

// ErrInvalidCredentials is returned for every failed authentication
// attempt. Unknown email, wrong password and empty password all map to
// this single error so a caller cannot tell which one happened.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service authenticates credentials and issues bearer tokens.
type Service struct {
	db *database.Client
}

// New creates a new authentication service.
func New(db *database.Client) *Service {
	return &Service{db: db}
}

// Authenticate verifies the email and password, returning the user if valid.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*database.User, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken exchanges valid credentials for a new opaque bearer token.
func (s *Service) IssueToken(ctx context.Context, email, password string) (*database.AuthToken, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.db.CreateToken(ctx, user.ID)
}
