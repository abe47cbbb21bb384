// Package auth holds the credential store: registration with salted
// one-way password hashing and login verification.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stockcast/internal/apperr"
	"stockcast/internal/store"
	"stockcast/pkg/logger"
)

// dummyHash is compared against when the username is unknown, so a lookup
// miss costs roughly the same as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Service validates and creates user credentials.
type Service struct {
	users  *store.UserRepository
	logger *logger.Logger
}

// NewService creates a new credential service.
func NewService(users *store.UserRepository, log *logger.Logger) *Service {
	return &Service{
		users:  users,
		logger: log,
	}
}

// Register creates a new user with a bcrypt-hashed password and returns its
// id. A taken username yields apperr.ErrDuplicateUsername.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &store.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrDuplicateUsername) {
			return 0, apperr.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")
	return user.ID, nil
}

// Authenticate verifies a username/password pair and returns the user id.
// Unknown user and wrong password both yield apperr.ErrAuthentication.
func (s *Service) Authenticate(ctx context.Context, username, rawPassword string) (int64, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(rawPassword))
			return 0, apperr.ErrAuthentication
		}
		return 0, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rawPassword)); err != nil {
		return 0, apperr.ErrAuthentication
	}

	return user.ID, nil
}
