package cacheinfra

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-crm-store/apperror"
)

// redisPort implements the cache port on a Redis client. The port contract
// maps directly onto GET / SET EX / DEL; redis.Nil is a miss, every other
// transport error wraps as CacheUnavailable.
type redisPort struct {
	client redis.UniversalClient
}

// NewRedisPort builds the Redis-backed cache adapter.
func NewRedisPort(client redis.UniversalClient) *redisPort {
	return &redisPort{client: client}
}

// Get returns the payload stored at key.
func (p *redisPort) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := p.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperror.CacheUnavailable(err, key)
	}
	return value, true, nil
}

// Set stores a payload at key with the given expiration.
func (p *redisPort) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := p.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return apperror.CacheUnavailable(err, key)
	}
	return nil
}

// Delete removes key. Redis DEL of an absent key is a no-op, which matches
// the port contract.
func (p *redisPort) Delete(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, key).Err(); err != nil {
		return apperror.CacheUnavailable(err, key)
	}
	return nil
}
