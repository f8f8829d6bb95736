package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// executeRoot runs the root command with test-safe paths and captures
// its output.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeRootAt(t, t.TempDir(), args...)
}

// executeRootAt runs the root command against an existing home directory
// so state persists across invocations within a test.
func executeRootAt(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PMLITE_HOME", home)
	t.Setenv("HOME", home)

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "test"})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	CloseLogFile()
	return buf.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.Contains(t, out, "pmlite")
	assert.Contains(t, out, "Available Commands")
}

func TestRootRejectsInvalidOutputFormat(t *testing.T) {
	_, err := executeRoot(t, "--output", "yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, pmerrors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootRejectsVerboseWithQuiet(t *testing.T) {
	_, err := executeRoot(t, "--verbose", "--quiet")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

// TestGetLoggerEmitsEvents verifies the shared logger works the way the
// subcommands use it: bound to a local variable, then asked for an event.
func TestGetLoggerEmitsEvents(t *testing.T) {
	var buf bytes.Buffer

	globalLoggerMu.Lock()
	previous := globalLogger
	globalLogger = zerolog.New(&buf)
	globalLoggerMu.Unlock()
	t.Cleanup(func() {
		globalLoggerMu.Lock()
		globalLogger = previous
		globalLoggerMu.Unlock()
	})

	logger := GetLogger()
	logger.Info().Str("id", "abc").Msg("task created")

	assert.Contains(t, buf.String(), `"task created"`)
	assert.Contains(t, buf.String(), `"id":"abc"`)
}

func TestRootRegistersCommands(t *testing.T) {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})

	want := []string{"init", "login", "logout", "dashboard", "stats", "okr", "task", "board", "note", "activity"}
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "missing command %q", name)
	}
}
