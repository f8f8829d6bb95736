package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

func newTestRedisKV(t *testing.T) *RedisKV {
	t.Helper()

	mr := miniredis.RunT(t)
	kv, err := NewRedisKV(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// TestRedisKVRoundTrip verifies set-then-get against an in-process server.
func TestRedisKVRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newTestRedisKV(t)

	require.NoError(t, kv.Set(ctx, "objectives", `[{"id":"1"}]`))

	got, err := kv.Get(ctx, "objectives")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)
}

// TestRedisKVGetAbsentKey verifies a missing key maps to ErrKeyNotFound.
func TestRedisKVGetAbsentKey(t *testing.T) {
	t.Parallel()

	_, err := newTestRedisKV(t).Get(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, pmerrors.ErrKeyNotFound)
}

// TestRedisKVRemove verifies removal, including of an absent key.
func TestRedisKVRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := newTestRedisKV(t)

	require.NoError(t, kv.Set(ctx, "notes", "[]"))
	require.NoError(t, kv.Remove(ctx, "notes"))

	_, err := kv.Get(ctx, "notes")
	assert.ErrorIs(t, err, pmerrors.ErrKeyNotFound)

	require.NoError(t, kv.Remove(ctx, "notes"))
}

// TestNewRedisKVEmptyURL verifies the constructor rejects an empty url.
func TestNewRedisKVEmptyURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisKV(context.Background(), "")
	assert.ErrorIs(t, err, pmerrors.ErrEmptyValue)
}
