// Package storage provides the persistence port for pmlite.
//
// All application state is stored as JSON strings under flat string keys.
// The KV interface is the injection seam that keeps record stores
// independent of the concrete backend: a directory of JSON files (the
// default), a redis server, or an in-memory map for tests.
package storage

import "context"

// KV is a synchronous key-value store addressed by string keys.
//
// Get returns errors.ErrKeyNotFound when the key is absent; callers
// recover by substituting a default collection. Set and Remove report
// backend failures (quota, connectivity) which callers treat as a local
// environment condition, never as in-memory state corruption.
type KV interface {
	// Get returns the value stored under key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error
}
