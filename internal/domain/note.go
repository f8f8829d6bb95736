package domain

import (
	"fmt"
	"strings"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// NoteType classifies a note.
type NoteType string

// NoteType constants define the valid note classifications.
const (
	NoteMeeting  NoteType = "meeting"
	NoteDecision NoteType = "decision"
	NoteAction   NoteType = "action"
	NoteGeneral  NoteType = "general"
)

// ValidNoteTypes returns all valid note type values.
func ValidNoteTypes() []NoteType {
	return []NoteType{NoteMeeting, NoteDecision, NoteAction, NoteGeneral}
}

// IsValid checks if the note type is a valid value.
func (t NoteType) IsValid() bool {
	switch t {
	case NoteMeeting, NoteDecision, NoteAction, NoteGeneral:
		return true
	default:
		return false
	}
}

// Note is a timestamped, typed, taggable text record.
// The collection is kept most-recent-first: creates prepend.
type Note struct {
	// ID is the unique identifier for the note.
	ID ID `json:"id"`

	// Title is a short heading. Required.
	Title string `json:"title"`

	// Content is the note body (markdown tolerated). Required.
	Content string `json:"content"`

	// Tags is a sequence of free labels.
	Tags []string `json:"tags"`

	// Date is an optional date string (YYYY-MM-DD).
	Date string `json:"date"`

	// Type classifies the note; defaults to meeting.
	Type NoteType `json:"type"`
}

// Validate checks the required-field invariant for notes.
// Both title and content must be non-blank, else the operation is a no-op.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: note title is required", pmerrors.ErrEmptyValue)
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("%w: note content is required", pmerrors.ErrEmptyValue)
	}
	if n.Type != "" && !n.Type.IsValid() {
		return fmt.Errorf("%w: %q is not a valid note type", pmerrors.ErrInvalidArgument, n.Type)
	}
	return nil
}

// Normalize applies default rules for a note loaded from storage:
// non-sequence tags become empty, missing type becomes meeting.
func (n *Note) Normalize() {
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if !n.Type.IsValid() {
		n.Type = NoteMeeting
	}
}

// MigrateNotes normalizes a previous-shape note collection in place and
// returns it.
func MigrateNotes(notes []Note) []Note {
	for i := range notes {
		notes[i].Normalize()
	}
	return notes
}

// SplitTags turns a comma-separated tag input into a trimmed sequence,
// dropping empties: "a, b ,," -> ["a" "b"].
func SplitTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
