package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevocations(t *testing.T, now func() time.Time) (RevocationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationRepository(client, now), mr
}

func TestRevokeThenIsRevoked(t *testing.T) {
	now := time.Now()
	repo, mr := newTestRevocations(t, func() time.Time { return now })
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "jti-1", now.Add(time.Hour)))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, time.Hour, mr.TTL(revocationKeyPrefix+"jti-1"))
}

func TestRevokeRecordDisappearsAtExpiry(t *testing.T) {
	now := time.Now()
	repo, mr := newTestRevocations(t, func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, "jti-2", now.Add(90*time.Second)))

	mr.FastForward(89 * time.Second)
	revoked, err := repo.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Second)
	revoked, err = repo.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.Empty(t, mr.Keys())
}

func TestRevokeIsIdempotent(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	repo, mr := newTestRevocations(t, clock)
	ctx := context.Background()
	expiresAt := now.Add(time.Hour)

	require.NoError(t, repo.Revoke(ctx, "jti-3", expiresAt))

	// Later, with less lifetime left, the record keeps its original TTL.
	now = now.Add(10 * time.Minute)
	mr.FastForward(10 * time.Minute)
	require.NoError(t, repo.Revoke(ctx, "jti-3", expiresAt))

	revoked, err := repo.IsRevoked(ctx, "jti-3")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 50*time.Minute, mr.TTL(revocationKeyPrefix+"jti-3"))
	assert.Len(t, mr.Keys(), 1)
}

func TestRevokeAlreadyExpiredIsNoop(t *testing.T) {
	now := time.Now()
	repo, mr := newTestRevocations(t, func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Revoke(ctx, "jti-4", now.Add(-time.Second)))
	require.NoError(t, repo.Revoke(ctx, "jti-5", now))

	assert.Empty(t, mr.Keys())
}

func TestRevokeRejectsEmptyJTI(t *testing.T) {
	repo, _ := newTestRevocations(t, nil)
	assert.Error(t, repo.Revoke(context.Background(), "", time.Now().Add(time.Hour)))
}

func TestIsRevokedReportsStoreErrors(t *testing.T) {
	repo, mr := newTestRevocations(t, nil)
	mr.SetError("ERR store offline")

	_, err := repo.IsRevoked(context.Background(), "jti-6")
	assert.Error(t, err)
}
