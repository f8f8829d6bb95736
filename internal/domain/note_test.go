package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

func TestNoteType_IsValid(t *testing.T) {
	t.Parallel()
	for _, nt := range ValidNoteTypes() {
		assert.True(t, nt.IsValid(), "note type %q should be valid", nt)
	}
	assert.False(t, NoteType("memo").IsValid())
	assert.False(t, NoteType("").IsValid())
}

func TestNote_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		note    Note
		wantErr error
	}{
		{"valid note", Note{Title: "Standup", Content: "Discussed roadmap", Type: NoteMeeting}, nil},
		{"missing title", Note{Content: "body"}, pmerrors.ErrEmptyValue},
		{"missing content", Note{Title: "head"}, pmerrors.ErrEmptyValue},
		{"blank content", Note{Title: "head", Content: " \t"}, pmerrors.ErrEmptyValue},
		{"bad type", Note{Title: "head", Content: "body", Type: "memo"}, pmerrors.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.note.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNote_Normalize(t *testing.T) {
	t.Parallel()
	n := Note{Title: "x", Content: "y"}
	n.Normalize()
	assert.Equal(t, NoteMeeting, n.Type)
	assert.NotNil(t, n.Tags)

	n2 := Note{Title: "x", Content: "y", Type: NoteDecision, Tags: []string{"q2"}}
	n2.Normalize()
	assert.Equal(t, NoteDecision, n2.Type)
	assert.Equal(t, []string{"q2"}, n2.Tags)
}

func TestSplitTags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain list", "roadmap,q2", []string{"roadmap", "q2"}},
		{"trims whitespace", " roadmap , q2 ", []string{"roadmap", "q2"}},
		{"drops empties", "roadmap,,  ,q2,", []string{"roadmap", "q2"}},
		{"empty input", "", []string{}},
		{"only separators", ", ,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitTags(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("parses ISO dates", func(t *testing.T) {
		t.Parallel()
		got, ok := ParseDate("2025-06-15")
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects the End of Quarter sentinel", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseDate("End of Quarter")
		assert.False(t, ok)
	})

	t.Run("rejects empty and junk", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseDate("")
		assert.False(t, ok)
		_, ok = ParseDate("soonish")
		assert.False(t, ok)
	})
}
