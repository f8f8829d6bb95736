// Package store provides the mutation layer over the key-value
// snapshot: loading record collections with legacy migration, the
// create/update/delete contract shared by objectives, tasks, and
// notes, and the activity log that records every mutation.
//
// Every mutation loads a fresh snapshot, applies the change, and
// persists before returning, so a failed write never leaves memory and
// storage disagreeing.
//
// Import rules:
//   - MAY import: internal/storage, internal/domain, internal/board,
//     internal/clock, internal/constants, internal/errors
//   - MUST NOT import: internal/cli, internal/tui
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
	"github.com/pmlite/pmlite/internal/storage"
)

// Store mediates all reads and writes of persisted records.
type Store struct {
	kv    storage.KV
	clock clock.Clock
	seed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithSeed controls whether an absent task snapshot loads as the
// starter tasks. Defaults to true.
func WithSeed(seed bool) Option {
	return func(s *Store) {
		s.seed = seed
	}
}

// New creates a Store over the given key-value backend.
func New(kv storage.KV, c clock.Clock, opts ...Option) *Store {
	if c == nil {
		c = clock.RealClock{}
	}
	s := &Store{kv: kv, clock: c, seed: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadJSON reads and decodes the value under key into out. It reports
// whether a usable value was present: absent keys and malformed
// payloads both return false so callers can fall back to a default.
func (s *Store) loadJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, pmerrors.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// A corrupt value is treated like an absent one rather than
		// wedging every read.
		return false, nil
	}
	return true, nil
}

// saveJSON encodes value and writes it under key.
func (s *Store) saveJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(raw))
}

// Activity returns the activity log, newest first.
func (s *Store) Activity(ctx context.Context) ([]domain.ActivityEntry, error) {
	var entries []domain.ActivityEntry
	ok, err := s.loadJSON(ctx, constants.KeyActivityLog, &entries)
	if err != nil {
		return nil, err
	}
	if !ok || entries == nil {
		return []domain.ActivityEntry{}, nil
	}
	return entries, nil
}

// RecentActivity returns up to limit of the newest entries.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	entries, err := s.Activity(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ClearActivity removes the whole activity log.
func (s *Store) ClearActivity(ctx context.Context) error {
	return s.kv.Remove(ctx, constants.KeyActivityLog)
}

// logActivity prepends one entry to the activity log, keeping the
// stored sequence newest first.
func (s *Store) logActivity(ctx context.Context, action string) error {
	entries, err := s.Activity(ctx)
	if err != nil {
		return err
	}
	entry := domain.ActivityEntry{
		Action:    action,
		Timestamp: s.clock.Now(),
	}
	entries = append([]domain.ActivityEntry{entry}, entries...)
	return s.saveJSON(ctx, constants.KeyActivityLog, entries)
}

// PageTitle returns the OKR page title, falling back to the default
// when none has been saved.
func (s *Store) PageTitle(ctx context.Context) (string, error) {
	raw, err := s.kv.Get(ctx, constants.KeyObjectivesTitle)
	if err != nil {
		if errors.Is(err, pmerrors.ErrKeyNotFound) {
			return constants.DefaultPageTitle, nil
		}
		return "", err
	}
	if raw == "" {
		return constants.DefaultPageTitle, nil
	}
	return raw, nil
}

// SetPageTitle persists a new OKR page title.
func (s *Store) SetPageTitle(ctx context.Context, title string) error {
	if title == "" {
		return fmt.Errorf("page title %w", pmerrors.ErrEmptyValue)
	}
	return s.kv.Set(ctx, constants.KeyObjectivesTitle, title)
}
