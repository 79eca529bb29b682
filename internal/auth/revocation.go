package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers tokens invalidated by logout until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore keeps revoked token IDs in Redis with the token's remaining lifetime as TTL
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore connects to Redis using a redis:// URL
func NewRedisRevocationStore(ctx context.Context, url string) (*RedisRevocationStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisRevocationStore{client: client}, nil
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}

// Revoke marks the token as revoked until it would have expired anyway
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

// IsRevoked reports whether the token was revoked
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping checks that Redis is reachable
func (s *RedisRevocationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool
func (s *RedisRevocationStore) Close() error {
	return s.client.Close()
}

// NoopRevocationStore is used when no Redis is configured; logout then only clears the cookie
type NoopRevocationStore struct{}

// Revoke does nothing
func (NoopRevocationStore) Revoke(context.Context, string, time.Time) error { return nil }

// IsRevoked always reports false
func (NoopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
