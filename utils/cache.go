package utils

import (
	"context"
	"fmt"
	"time"

	"coolrentals/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient holds revoked admin tokens. It is nil when Redis is not configured.
var AuthCacheClient *redis.Client

// InitAuthCache connects the auth cache client. An empty REDIS_ADDR leaves it disabled.
func InitAuthCache() error {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis (auth cache): %w", err)
	}
	AuthCacheClient = client
	return nil
}

// TokenStore remembers revoked token ids until the tokens would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewTokenStore returns a Redis-backed store, or a no-op store when client is nil.
func NewTokenStore(client *redis.Client) TokenStore {
	if client == nil {
		return NoopTokenStore{}
	}
	return &RedisTokenStore{Client: client}
}

type RedisTokenStore struct {
	Client *redis.Client
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}

func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.Client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopTokenStore never revokes anything.
type NoopTokenStore struct{}

func (NoopTokenStore) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopTokenStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
