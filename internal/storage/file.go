package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmlite/pmlite/internal/ctxutil"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
	"github.com/pmlite/pmlite/internal/flock"
)

// Directory and file permission constants.
const (
	dirPerm  = 0o750 // Secure directory permissions
	filePerm = 0o600 // Secure file permissions

	// lockFileName guards mutations of the data directory against
	// concurrent pmlite processes.
	lockFileName = ".pmlite.lock"
)

// FileKV implements KV with one JSON document per key inside a data
// directory. Writes are atomic (write-then-rename) so a crash mid-write
// never leaves a truncated snapshot behind.
type FileKV struct {
	dir string
}

// NewFileKV creates a FileKV rooted at dir, creating the directory if
// needed.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("data directory %w", pmerrors.ErrEmptyValue)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: failed to create data directory: %w", pmerrors.ErrStorageUnavailable, err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the absolute path of the data directory.
func (s *FileKV) Dir() string {
	return s.dir
}

// Get returns the value stored under key.
func (s *FileKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path) //#nosec G304 -- path is validated and constructed from trusted base
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", pmerrors.ErrKeyNotFound, key)
		}
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return string(data), nil
}

// Set stores value under key atomically.
func (s *FileKV) Set(ctx context.Context, key, value string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	return s.withLock(func() error {
		if err := atomicWrite(path, []byte(value)); err != nil {
			return fmt.Errorf("failed to write key %q: %w", key, err)
		}
		return nil
	})
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *FileKV) Remove(ctx context.Context, key string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	return s.withLock(func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove key %q: %w", key, err)
		}
		return nil
	})
}

// withLock runs fn while holding an exclusive lock on the data
// directory's lock file, serializing mutations across processes. The
// lock is non-blocking: a second writer errors instead of queueing.
func (s *FileKV) withLock(fn func() error) error {
	f, err := os.OpenFile(filepath.Join(s.dir, lockFileName), os.O_RDWR|os.O_CREATE, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("%w: failed to open lock file: %w", pmerrors.ErrStorageUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	if err := flock.Exclusive(f.Fd()); err != nil {
		return fmt.Errorf("%w: data directory is locked by another process", pmerrors.ErrStorageUnavailable)
	}
	defer func() { _ = flock.Unlock(f.Fd()) }()

	return fn()
}

// keyPath maps a storage key to its file, rejecting path traversal.
func (s *FileKV) keyPath(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage key %w", pmerrors.ErrEmptyValue)
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: invalid storage key %q", pmerrors.ErrInvalidArgument, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// atomicWrite writes data to a file atomically using write-then-rename.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Ensure data is persisted before rename
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// Ensure FileKV implements KV.
var _ KV = (*FileKV)(nil)
