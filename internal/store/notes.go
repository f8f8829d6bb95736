package store

import (
	"context"
	"fmt"

	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Notes returns the stored note sequence, newest first; empty when the
// snapshot is absent or corrupt.
func (s *Store) Notes(ctx context.Context) ([]domain.Note, error) {
	var notes []domain.Note
	ok, err := s.loadJSON(ctx, constants.KeyNotes, &notes)
	if err != nil {
		return nil, err
	}
	if !ok || notes == nil {
		return []domain.Note{}, nil
	}
	return domain.MigrateNotes(notes), nil
}

func (s *Store) saveNotes(ctx context.Context, notes []domain.Note) error {
	return s.saveJSON(ctx, constants.KeyNotes, notes)
}

// CreateNote validates the draft, assigns a fresh id, and prepends it
// so the newest note reads first.
func (s *Store) CreateNote(ctx context.Context, draft domain.Note) (domain.Note, error) {
	if err := draft.Validate(); err != nil {
		return domain.Note{}, err
	}

	notes, err := s.Notes(ctx)
	if err != nil {
		return domain.Note{}, err
	}

	draft.ID = domain.NewID()
	draft.Normalize()
	if draft.Date == "" {
		draft.Date = s.clock.Now().Format("2006-01-02")
	}
	notes = append([]domain.Note{draft}, notes...)

	if err := s.saveNotes(ctx, notes); err != nil {
		return domain.Note{}, err
	}
	if err := s.logActivity(ctx, "Created note: "+draft.Title); err != nil {
		return domain.Note{}, err
	}
	return draft, nil
}

// UpdateNote replaces every field of the note except the id.
func (s *Store) UpdateNote(ctx context.Context, id domain.ID, draft domain.Note) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	notes, err := s.Notes(ctx)
	if err != nil {
		return err
	}

	idx := noteIndex(notes, id)
	if idx < 0 {
		return fmt.Errorf("note %s: %w", id, pmerrors.ErrNotFound)
	}

	draft.ID = id
	draft.Normalize()
	if draft.Date == "" {
		draft.Date = notes[idx].Date
	}
	notes[idx] = draft

	if err := s.saveNotes(ctx, notes); err != nil {
		return err
	}
	return s.logActivity(ctx, "Edited note: "+draft.Title)
}

// DeleteNote removes a note behind the confirmation gate.
func (s *Store) DeleteNote(ctx context.Context, id domain.ID, confirmed bool) error {
	if !confirmed {
		return pmerrors.ErrNotConfirmed
	}

	notes, err := s.Notes(ctx)
	if err != nil {
		return err
	}

	idx := noteIndex(notes, id)
	if idx < 0 {
		return fmt.Errorf("note %s: %w", id, pmerrors.ErrNotFound)
	}

	title := notes[idx].Title
	notes = append(notes[:idx], notes[idx+1:]...)

	if err := s.saveNotes(ctx, notes); err != nil {
		return err
	}
	return s.logActivity(ctx, "Deleted note: "+title)
}

// Note returns a single note by id.
func (s *Store) Note(ctx context.Context, id domain.ID) (domain.Note, error) {
	notes, err := s.Notes(ctx)
	if err != nil {
		return domain.Note{}, err
	}
	idx := noteIndex(notes, id)
	if idx < 0 {
		return domain.Note{}, fmt.Errorf("note %s: %w", id, pmerrors.ErrNotFound)
	}
	return notes[idx], nil
}

func noteIndex(notes []domain.Note, id domain.ID) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
