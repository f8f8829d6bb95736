package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/domain"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// TestCreateNotePrepends verifies the newest note reads first and the
// date is stamped when omitted.
func TestCreateNotePrepends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	first, err := s.CreateNote(ctx, domain.Note{Title: "First", Content: "a"})
	require.NoError(t, err)
	second, err := s.CreateNote(ctx, domain.Note{Title: "Second", Content: "b"})
	require.NoError(t, err)

	notes, err := s.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)

	assert.Equal(t, testNow.Format("2006-01-02"), first.Date)
	assert.Equal(t, domain.NoteMeeting, first.Type, "type defaults to meeting")
	assert.NotNil(t, first.Tags)

	assert.Equal(t, []string{"Created note: Second", "Created note: First"}, actions(t, s))
}

// TestCreateNoteRequiresTitleAndContent verifies both required fields.
func TestCreateNoteRequiresTitleAndContent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.CreateNote(ctx, domain.Note{Content: "body only"})
	assert.ErrorIs(t, err, pmerrors.ErrEmptyValue)

	_, err = s.CreateNote(ctx, domain.Note{Title: "title only"})
	assert.ErrorIs(t, err, pmerrors.ErrEmptyValue)

	assert.Empty(t, actions(t, s))
}

// TestUpdateNote verifies replacement with a stable id.
func TestUpdateNote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	created, err := s.CreateNote(ctx, domain.Note{Title: "Standup", Content: "notes", Type: domain.NoteMeeting})
	require.NoError(t, err)

	edit := created
	edit.Title = "Standup recap"
	edit.Type = domain.NoteDecision
	edit.Tags = []string{"team"}
	require.NoError(t, s.UpdateNote(ctx, created.ID, edit))

	got, err := s.Note(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Standup recap", got.Title)
	assert.Equal(t, domain.NoteDecision, got.Type)
	assert.Equal(t, []string{"team"}, got.Tags)
	assert.Contains(t, actions(t, s), "Edited note: Standup recap")

	err = s.UpdateNote(ctx, domain.ID("missing"), edit)
	assert.ErrorIs(t, err, pmerrors.ErrNotFound)
}

// TestDeleteNote verifies the gate and the delete entry.
func TestDeleteNote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	created, err := s.CreateNote(ctx, domain.Note{Title: "Scratch", Content: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteNote(ctx, created.ID, false), pmerrors.ErrNotConfirmed)
	require.NoError(t, s.DeleteNote(ctx, created.ID, true))

	_, err = s.Note(ctx, created.ID)
	assert.ErrorIs(t, err, pmerrors.ErrNotFound)
	assert.Contains(t, actions(t, s), "Deleted note: Scratch")

	err = s.DeleteNote(ctx, created.ID, true)
	assert.ErrorIs(t, err, pmerrors.ErrNotFound)
}

// TestNotesLegacyMigration verifies tag and type defaulting on load.
func TestNotesLegacyMigration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, kv := newTestStore(t)
	require.NoError(t, kv.Set(ctx, constants.KeyNotes,
		`[{"id":3,"title":"Old","content":"body"}]`))

	notes, err := s.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.ID("3"), notes[0].ID)
	assert.Equal(t, domain.NoteMeeting, notes[0].Type)
	assert.NotNil(t, notes[0].Tags)
}
