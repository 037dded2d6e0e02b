package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "jwt:blacklist:"

// RevocationRepository records credentials invalidated before their natural
// expiry. Records expire on their own once the credential would have.
type RevocationRepository interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type revocationRepository struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRevocationRepository returns a Redis-backed implementation. now defaults
// to time.Now and is used to turn expiresAt into a TTL.
func NewRevocationRepository(client redis.Cmdable, now func() time.Time) RevocationRepository {
	if now == nil {
		now = time.Now
	}
	return &revocationRepository{client: client, now: now}
}

// Revoke stores the jti until expiresAt. Credentials that are already past
// their expiry are skipped. A repeat call keeps the first record's TTL.
func (r *revocationRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return errors.New("revoke: empty jti")
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.SetNX(ctx, revocationKey(jti), "1", ttl).Err()
}

func (r *revocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revocationKey(jti string) string {
	return revocationKeyPrefix + jti
}
