package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps tokens in Redis under prefix:id with the token's ttl.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "portal:session"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

// Load fetches the token for id.
func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	token, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return token, err
}

// Save replaces the token for id. A zero ttl stores without expiry.
func (s *RedisStore) Save(ctx context.Context, id, token string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(id), token, ttl).Err()
}

// Delete removes id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
