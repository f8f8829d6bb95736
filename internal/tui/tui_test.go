package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/domain"
	"github.com/pmlite/pmlite/internal/metrics"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// TestRelativeTimeWith verifies the humanized buckets.
func TestRelativeTimeWith(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)

	tests := []struct {
		name     string
		ago      time.Duration
		expected string
	}{
		{name: "seconds", ago: 30 * time.Second, expected: "just now"},
		{name: "one minute", ago: 90 * time.Second, expected: "1 minute ago"},
		{name: "minutes", ago: 10 * time.Minute, expected: "10 minutes ago"},
		{name: "one hour", ago: 70 * time.Minute, expected: "1 hour ago"},
		{name: "hours", ago: 5 * time.Hour, expected: "5 hours ago"},
		{name: "one day", ago: 30 * time.Hour, expected: "1 day ago"},
		{name: "days", ago: 3 * 24 * time.Hour, expected: "3 days ago"},
		{name: "weeks", ago: 15 * 24 * time.Hour, expected: "2 weeks ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, RelativeTimeWith(testNow.Add(-tt.ago), c))
		})
	}
}

// TestTruncate verifies rune-aware shortening.
func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "long…", Truncate("longer than", 5))
}

// TestRenderTable verifies alignment and padding.
func TestRenderTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	var buf bytes.Buffer
	RenderTable(&buf, []string{"ID", "TITLE"}, [][]string{
		{"1", "Fix login bug"},
		{"2", "Ship"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "TITLE")
	assert.Contains(t, lines[2], "Fix login bug")
	assert.Contains(t, lines[3], "Ship")
}

// TestOutputSelection verifies format-based output construction.
func TestOutputSelection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewOutput(&buf, "json")
	_, ok := out.(*JSONOutput)
	assert.True(t, ok)

	out = NewOutput(&buf, "text")
	_, ok = out.(*TTYOutput)
	assert.True(t, ok)
}

// TestJSONOutput verifies message suppression and error shape.
func TestJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("hidden")
	out.Info("hidden")
	out.Warning("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, out.JSON(map[string]int{"total": 4}))
	assert.Contains(t, buf.String(), `"total": 4`)

	buf.Reset()
	out.Error(errors.New("boom"))
	assert.JSONEq(t, `{"error":"boom"}`, buf.String())
}

// TestObjectiveStatusIcon verifies every classification has an icon.
func TestObjectiveStatusIcon(t *testing.T) {
	t.Parallel()

	statuses := []metrics.ObjectiveStatus{
		metrics.StatusCompleted, metrics.StatusOnTrack, metrics.StatusInProgress,
		metrics.StatusAtRisk, metrics.StatusOverdue, metrics.StatusNotStarted,
	}
	seen := make(map[string]bool)
	for _, s := range statuses {
		icon := ObjectiveStatusIcon(s)
		assert.NotEqual(t, "?", icon)
		seen[icon] = true
	}
	assert.Equal(t, "?", ObjectiveStatusIcon(metrics.ObjectiveStatus("bogus")))
}

// TestRenderBoard verifies all three columns and cards appear.
func TestRenderBoard(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		{ID: "1", Title: "Set up CI", Status: domain.StatusToDo, Priority: domain.PriorityHigh, Effort: domain.EffortM},
		{ID: "2", Title: "Fix login", Status: domain.StatusInProgress, Priority: domain.PriorityMedium, Effort: domain.EffortS},
	}

	view := RenderBoard(tasks, DefaultBoardConfig())
	assert.Contains(t, view, "To Do (1)")
	assert.Contains(t, view, "In Progress (1)")
	assert.Contains(t, view, "Done (0)")
	assert.Contains(t, view, "Set up CI")
	assert.Contains(t, view, "Fix login")
	assert.Contains(t, view, "empty")
}

// TestRenderBoardCardNumbersMatchMovePositions verifies cards are numbered
// from 1, the positions `pmlite task move` takes.
func TestRenderBoardCardNumbersMatchMovePositions(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		{ID: "1", Title: "First", Status: domain.StatusToDo},
		{ID: "2", Title: "Second", Status: domain.StatusToDo},
	}

	view := RenderBoard(tasks, DefaultBoardConfig())
	assert.Contains(t, view, "1. First")
	assert.Contains(t, view, "2. Second")
	assert.NotContains(t, view, "0. First")
}

// TestRenderBoardResolvesLinkedObjective verifies cards show the linked
// objective's title and leave dangling references unlinked.
func TestRenderBoardResolvesLinkedObjective(t *testing.T) {
	t.Parallel()

	cfg := DefaultBoardConfig()
	cfg.Objectives = []domain.Objective{{ID: "okr-1", Title: "Ship v2"}}
	tasks := []domain.Task{
		{ID: "1", Title: "Cutover", Status: domain.StatusToDo, OKRID: "okr-1"},
		{ID: "2", Title: "Orphan", Status: domain.StatusToDo, OKRID: "okr-gone"},
	}

	view := RenderBoard(tasks, cfg)
	assert.Contains(t, view, "Ship v2")
	assert.NotContains(t, view, "okr-gone")
}

type staticLister struct {
	tasks []domain.Task
	err   error
}

func (l *staticLister) Tasks(context.Context) ([]domain.Task, error) {
	return l.tasks, l.err
}

// TestWatchModelUpdate verifies refresh and quit handling.
func TestWatchModelUpdate(t *testing.T) {
	t.Parallel()

	lister := &staticLister{tasks: []domain.Task{
		{ID: "1", Title: "Watched", Status: domain.StatusToDo},
	}}
	m := NewWatchModel(context.Background(), lister, DefaultWatchConfig())

	msg := m.refreshData()()
	refresh, ok := msg.(RefreshMsg)
	require.True(t, ok)
	require.NoError(t, refresh.Err)

	updated, _ := m.Update(refresh)
	model, ok := updated.(*WatchModel)
	require.True(t, ok)
	assert.Contains(t, model.View(), "Watched")

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	model, ok = updated.(*WatchModel)
	require.True(t, ok)
	assert.True(t, model.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, model.View())
}

// TestWatchModelRefreshError verifies errors render without wedging
// the refresh loop.
func TestWatchModelRefreshError(t *testing.T) {
	t.Parallel()

	lister := &staticLister{err: errors.New("backend gone")}
	m := NewWatchModel(context.Background(), lister, DefaultWatchConfig())

	msg := m.refreshData()()
	updated, cmd := m.Update(msg)
	model, ok := updated.(*WatchModel)
	require.True(t, ok)
	assert.NotNil(t, cmd, "a tick must follow a failed refresh")
	assert.Contains(t, model.View(), "backend gone")
}
