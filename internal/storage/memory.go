package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/pmlite/pmlite/internal/ctxutil"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// MemoryKV implements KV with an in-process map. It backs tests and the
// throwaway `--storage memory` mode; nothing survives the process.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", pmerrors.ErrKeyNotFound, key)
	}
	return v, nil
}

// Set stores value under key.
func (s *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *MemoryKV) Remove(ctx context.Context, key string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *MemoryKV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Ensure MemoryKV implements KV.
var _ KV = (*MemoryKV)(nil)
