package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenKeyPrefix = "auth:revoked:"

// ErrUnavailable is returned when Redis was not configured or could not be reached.
var ErrUnavailable = errors.New("cache: redis unavailable")

var client *redis.Client

// Init connects to Redis. On failure the package stays disabled and every
// helper degrades to a no-op.
func Init(addr, password string, db int) error {
	if addr == "" {
		return ErrUnavailable
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	client = c
	return nil
}

// Close releases the connection pool
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// GetClient returns the Redis client, nil when disabled
func GetClient() *redis.Client {
	return client
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// TokenStore keeps revoked token ids until the tokens would have expired anyway.
type TokenStore struct{}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Revoke marks a token id as revoked for ttl
func (TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if client == nil {
		return ErrUnavailable
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, revokedTokenKeyPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether the token id was revoked. Lookup errors count as
// not revoked so an outage does not lock everyone out.
func (TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	if client == nil || tokenID == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
