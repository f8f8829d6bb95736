package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConfirm is a confirmRunner that records the prompt and answers
// without user interaction.
type stubConfirm struct {
	answer bool
	err    error
	target *bool
}

func (s *stubConfirm) Run() error {
	if s.err != nil {
		return s.err
	}
	*s.target = s.answer
	return nil
}

// withStubConfirm swaps the interactive prompt for the test's lifetime.
func withStubConfirm(t *testing.T, answer bool, err error) *string {
	t.Helper()

	var gotTitle string
	original := createConfirmForm
	createConfirmForm = func(title, _ string, confirm *bool) confirmRunner {
		gotTitle = title
		return &stubConfirm{answer: answer, err: err, target: confirm}
	}
	t.Cleanup(func() { createConfirmForm = original })
	return &gotTitle
}

func TestConfirmDeletionYesFlagSkipsPrompt(t *testing.T) {
	title := withStubConfirm(t, false, nil)

	confirmed, err := confirmDeletion(&GlobalFlags{Yes: true}, "task", "Fix login bug")
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.Empty(t, *title, "prompt should not run with --yes")
}

func TestConfirmDeletionPromptAccepted(t *testing.T) {
	title := withStubConfirm(t, true, nil)

	confirmed, err := confirmDeletion(&GlobalFlags{}, "objective", "Ship v2")
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.Equal(t, "Delete objective 'Ship v2'?", *title)
}

func TestConfirmDeletionPromptDeclined(t *testing.T) {
	withStubConfirm(t, false, nil)

	confirmed, err := confirmDeletion(&GlobalFlags{}, "note", "Sprint retro")
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestConfirmDeletionPromptError(t *testing.T) {
	withStubConfirm(t, false, stderrors.New("tty closed"))

	confirmed, err := confirmDeletion(&GlobalFlags{}, "task", "Anything")
	require.Error(t, err)
	assert.False(t, confirmed)
}
