package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/examhub/exam-service/internal/auth"
	"github.com/examhub/exam-service/internal/domain"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
	err     error
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newFakeUsers(t *testing.T, email, password string, role domain.Role) *fakeUsers {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUsers{byEmail: map[string]*domain.User{
		email: {ID: "u1", Email: email, PasswordHash: hash, Role: role},
	}}
}

func TestPasswordCredentialStore(t *testing.T) {
	users := newFakeUsers(t, "admin@example.com", "s3cret", domain.RoleAdmin)
	store, err := NewPasswordCredentialStore(users, bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	user, err := store.Authenticate(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	_, err = store.Authenticate(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordCredentialStorePropagatesLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	store, err := NewPasswordCredentialStore(&fakeUsers{err: boom}, bcrypt.MinCost)
	require.NoError(t, err)

	_, err = store.Authenticate(context.Background(), "admin@example.com", "s3cret")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
