package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	cache "github.com/mrz1836/go-cache"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// redis connection pool settings. pmlite is single-user, so the pool is
// deliberately small.
const (
	redisMaxActive   = 0 // unlimited
	redisMaxIdle     = 10
	redisIdleTimeout = 240 * time.Second
	redisKeyPrefix   = "pmlite:"
)

// RedisKV implements KV on a redis server via the go-cache client.
// It exists for setups that want state to outlive the local machine
// (e.g. a home server); the default backend is FileKV.
type RedisKV struct {
	client *cache.Client
}

// NewRedisKV connects to the redis server at url (redis://host:port).
func NewRedisKV(ctx context.Context, url string) (*RedisKV, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url %w", pmerrors.ErrEmptyValue)
	}
	client, err := cache.Connect(ctx, url, redisMaxActive, redisMaxIdle, 0, redisIdleTimeout, true, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pmerrors.ErrStorageUnavailable, err)
	}
	return &RedisKV{client: client}, nil
}

// Get returns the value stored under key.
func (s *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := cache.Get(ctx, s.client, redisKeyPrefix+key)
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return "", fmt.Errorf("%w: %s", pmerrors.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("%w: failed to read key %q: %w", pmerrors.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

// Set stores value under key.
func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := cache.Set(ctx, s.client, redisKeyPrefix+key, value); err != nil {
		return fmt.Errorf("%w: failed to write key %q: %w", pmerrors.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *RedisKV) Remove(ctx context.Context, key string) error {
	if _, err := cache.Delete(ctx, s.client, redisKeyPrefix+key); err != nil {
		return fmt.Errorf("%w: failed to remove key %q: %w", pmerrors.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisKV) Close() error {
	s.client.Close()
	return nil
}

// Ensure RedisKV implements KV.
var _ KV = (*RedisKV)(nil)
