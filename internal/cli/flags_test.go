package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   bool
	}{
		{OutputText, true},
		{OutputJSON, true},
		{"yaml", false},
		{"", false},
		{"JSON", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidOutputFormat(tt.format))
		})
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: ExitSuccess},
		{name: "generic error", err: stderrors.New("boom"), want: ExitError},
		{name: "invalid output format", err: pmerrors.ErrInvalidOutputFormat, want: ExitInvalidInput},
		{name: "invalid argument", err: pmerrors.ErrInvalidArgument, want: ExitInvalidInput},
		{name: "empty value", err: pmerrors.ErrEmptyValue, want: ExitInvalidInput},
		{name: "wrapped invalid argument", err: pmerrors.Wrap(pmerrors.ErrInvalidArgument, "bad column"), want: ExitInvalidInput},
		{name: "not found", err: pmerrors.ErrNotFound, want: ExitError},
		{name: "cobra unknown flag", err: stderrors.New(`unknown flag: --bogus`), want: ExitInvalidInput},
		{name: "cobra unknown command", err: stderrors.New(`unknown command "frobnicate" for "pmlite"`), want: ExitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2025-03-15)", formatVersion(BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2025-03-15",
	}))
}
