package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/domain"
	"github.com/examhub/exam-service/internal/repository"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialStore verifies a plaintext secret against the stored account.
type CredentialStore interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// PasswordCredentialStore checks bcrypt hashes held by a UserRepository.
type PasswordCredentialStore struct {
	users     repository.UserRepository
	dummyHash string
}

// NewPasswordCredentialStore builds the store. The dummy hash keeps lookups
// for unknown emails as slow as a real comparison.
func NewPasswordCredentialStore(users repository.UserRepository, bcryptCost int) (*PasswordCredentialStore, error) {
	dummy, err := auth.HashPassword("unknown-account-placeholder", bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder: %w", err)
	}
	return &PasswordCredentialStore{users: users, dummyHash: dummy}, nil
}

// Authenticate returns the matching user or ErrInvalidCredentials.
func (s *PasswordCredentialStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return user, nil
}
