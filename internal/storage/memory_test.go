package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// TestMemoryKVRoundTrip verifies basic set/get/remove behavior.
func TestMemoryKVRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "tasks")
	assert.ErrorIs(t, err, pmerrors.ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "tasks", "[]"))
	got, err := kv.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	assert.Equal(t, 1, kv.Len())

	require.NoError(t, kv.Remove(ctx, "tasks"))
	_, err = kv.Get(ctx, "tasks")
	assert.ErrorIs(t, err, pmerrors.ErrKeyNotFound)
	assert.Zero(t, kv.Len())
}

// TestMemoryKVConcurrentAccess exercises the lock under parallel writers.
func TestMemoryKVConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := NewMemoryKV()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = kv.Set(ctx, "counter", "x")
				_, _ = kv.Get(ctx, "counter")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	got, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
