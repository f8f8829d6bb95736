package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/domain"
)

// testNow is the injected "today" for all date-sensitive tests.
var testNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func dateOffset(days int) string {
	return testNow.AddDate(0, 0, days).Format("2006-01-02")
}

func objective(progressDone, krTotal int, due string) domain.Objective {
	krs := make([]domain.KeyResult, krTotal)
	for i := range krs {
		krs[i] = domain.KeyResult{Text: "kr", Done: i < progressDone}
	}
	return domain.Objective{Title: "o", Due: due, KeyResults: krs}
}

// TestProgress verifies the done-key-result percentage.
func TestProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		done     int
		total    int
		expected int
	}{
		{name: "no key results", done: 0, total: 0, expected: 0},
		{name: "none done", done: 0, total: 4, expected: 0},
		{name: "half done", done: 2, total: 4, expected: 50},
		{name: "one of three rounds", done: 1, total: 3, expected: 33},
		{name: "two of three rounds", done: 2, total: 3, expected: 67},
		{name: "all done", done: 3, total: 3, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Progress(objective(tt.done, tt.total, "")))
		})
	}
}

// TestClassifyStatus verifies the full status ladder against an
// injected today.
func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)

	tests := []struct {
		name     string
		done     int
		total    int
		due      string
		expected ObjectiveStatus
	}{
		{name: "complete beats any date", done: 10, total: 10, due: dateOffset(-30), expected: StatusCompleted},
		{name: "past due is overdue", done: 5, total: 10, due: dateOffset(-1), expected: StatusOverdue},
		{name: "due in 5 days at 50 percent", done: 5, total: 10, due: dateOffset(5), expected: StatusAtRisk},
		{name: "due in 5 days at 80 percent", done: 8, total: 10, due: dateOffset(5), expected: StatusOnTrack},
		{name: "due in 5 days at 10 percent", done: 1, total: 10, due: dateOffset(5), expected: StatusAtRisk},
		{name: "due today counts as near", done: 9, total: 10, due: dateOffset(0), expected: StatusOnTrack},
		{name: "due in 10 days at 60 percent", done: 6, total: 10, due: dateOffset(10), expected: StatusOnTrack},
		{name: "due in 10 days at 30 percent", done: 3, total: 10, due: dateOffset(10), expected: StatusInProgress},
		{name: "due in 10 days at 20 percent", done: 2, total: 10, due: dateOffset(10), expected: StatusAtRisk},
		{name: "due in 20 days at 90 percent", done: 9, total: 10, due: dateOffset(20), expected: StatusOnTrack},
		{name: "due in 20 days at 40 percent", done: 4, total: 10, due: dateOffset(20), expected: StatusInProgress},
		{name: "due in 30 days untouched", done: 0, total: 10, due: dateOffset(30), expected: StatusNotStarted},
		{name: "sentinel due treated as distant", done: 0, total: 10, due: "End of Quarter", expected: StatusNotStarted},
		{name: "sentinel due with high progress", done: 7, total: 10, due: "End of Quarter", expected: StatusOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ClassifyStatus(c, objective(tt.done, tt.total, tt.due)))
		})
	}
}

// TestClassifyStatusAlwaysOneOfSix sweeps progress values across date
// buckets and checks the result is always a defined label.
func TestClassifyStatusAlwaysOneOfSix(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)
	valid := map[ObjectiveStatus]bool{
		StatusCompleted: true, StatusOnTrack: true, StatusInProgress: true,
		StatusAtRisk: true, StatusOverdue: true, StatusNotStarted: true,
	}

	for _, offset := range []int{-10, -1, 0, 3, 7, 8, 14, 15, 100} {
		for done := 0; done <= 10; done++ {
			got := ClassifyStatus(c, objective(done, 10, dateOffset(offset)))
			require.True(t, valid[got], "offset %d done %d gave %q", offset, done, got)
			if done == 10 {
				assert.Equal(t, StatusCompleted, got)
			}
		}
	}
}

// TestDaysRemaining verifies the deadline distance labels.
func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)

	tests := []struct {
		name     string
		due      string
		expected string
	}{
		{name: "overdue", due: dateOffset(-3), expected: "3 days overdue"},
		{name: "due today", due: dateOffset(0), expected: "Due today"},
		{name: "one day", due: dateOffset(1), expected: "1 day left"},
		{name: "many days", due: dateOffset(12), expected: "12 days left"},
		{name: "sentinel", due: "End of Quarter", expected: ""},
		{name: "empty", due: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, DaysRemaining(c, tt.due))
		})
	}
}

// TestDueStatus verifies task deadline pressure classification.
func TestDueStatus(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)

	tests := []struct {
		name     string
		status   domain.TaskStatus
		due      string
		urgency  DueUrgency
		expected string
	}{
		{name: "done task has no urgency", status: domain.StatusDone, due: dateOffset(-5), urgency: UrgencyNone},
		{name: "empty due has no urgency", status: domain.StatusToDo, due: "", urgency: UrgencyNone},
		{name: "unparseable due has no urgency", status: domain.StatusToDo, due: "whenever", urgency: UrgencyNone},
		{name: "past due is overdue", status: domain.StatusInProgress, due: dateOffset(-1), urgency: UrgencyOverdue, expected: "Overdue"},
		{name: "due today", status: domain.StatusToDo, due: dateOffset(0), urgency: UrgencyDueSoon, expected: "Due today"},
		{name: "due tomorrow", status: domain.StatusToDo, due: dateOffset(1), urgency: UrgencyDueSoon, expected: "1d left"},
		{name: "due in three days", status: domain.StatusToDo, due: dateOffset(3), urgency: UrgencyDueSoon, expected: "3d left"},
		{name: "due in four days is quiet", status: domain.StatusToDo, due: dateOffset(4), urgency: UrgencyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			urgency, label := DueStatus(c, domain.Task{Status: tt.status, Due: tt.due})
			assert.Equal(t, tt.urgency, urgency)
			assert.Equal(t, tt.expected, label)
		})
	}
}

// TestComputeTaskStats verifies the aggregate counters.
func TestComputeTaskStats(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)
	tasks := []domain.Task{
		{Title: "a", Status: domain.StatusDone, Priority: domain.PriorityHigh, Due: dateOffset(-10)},
		{Title: "b", Status: domain.StatusDone, Priority: domain.PriorityLow},
		{Title: "c", Status: domain.StatusInProgress, Priority: domain.PriorityHigh, Due: dateOffset(-1)},
		{Title: "d", Status: domain.StatusToDo, Priority: domain.PriorityMedium, Due: dateOffset(5)},
	}

	stats := ComputeTaskStats(c, tasks)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Done)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Todo)
	assert.Equal(t, 1, stats.HighPriority, "done high-priority tasks do not count")
	assert.Equal(t, 1, stats.Overdue, "done overdue tasks do not count")
	assert.Equal(t, 50, stats.CompletionRate)
}

// TestComputeTaskStatsEmpty verifies the zero-task snapshot.
func TestComputeTaskStatsEmpty(t *testing.T) {
	t.Parallel()

	stats := ComputeTaskStats(clock.Fixed(testNow), nil)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.CompletionRate)
}

// TestComputeNoteStats verifies per-type and this-week counts.
func TestComputeNoteStats(t *testing.T) {
	t.Parallel()

	c := clock.Fixed(testNow)
	notes := []domain.Note{
		{Title: "a", Type: domain.NoteMeeting, Date: dateOffset(0)},
		{Title: "b", Type: domain.NoteMeeting, Date: dateOffset(-7)},
		{Title: "c", Type: domain.NoteDecision, Date: dateOffset(-8)},
		{Title: "d", Type: domain.NoteAction, Date: dateOffset(-2)},
		{Title: "e", Type: domain.NoteGeneral, Date: "not a date"},
	}

	stats := ComputeNoteStats(c, notes)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.ByType[domain.NoteMeeting])
	assert.Equal(t, 1, stats.ByType[domain.NoteDecision])
	assert.Equal(t, 1, stats.ByType[domain.NoteAction])
	assert.Equal(t, 1, stats.ByType[domain.NoteGeneral])
	assert.Equal(t, 3, stats.ThisWeek, "week window is inclusive on both ends")
}

// TestSuggestedTags verifies frequency ordering with first-seen tiebreak.
func TestSuggestedTags(t *testing.T) {
	t.Parallel()

	notes := []domain.Note{
		{Tags: []string{"roadmap", "q2"}},
		{Tags: []string{"q2", "hiring"}},
		{Tags: []string{"q2", "roadmap", "infra"}},
		{Tags: []string{"design", "api", "infra", "ops"}},
	}

	got := SuggestedTags(notes, 6)
	require.Len(t, got, 6)
	assert.Equal(t, TagCount{Tag: "q2", Count: 3}, got[0])
	assert.Equal(t, TagCount{Tag: "roadmap", Count: 2}, got[1])
	assert.Equal(t, TagCount{Tag: "infra", Count: 2}, got[2])
	// Remaining single-count tags keep first-seen order.
	assert.Equal(t, "hiring", got[3].Tag)
	assert.Equal(t, "design", got[4].Tag)
	assert.Equal(t, "api", got[5].Tag)
}

// TestSuggestedTagsEmpty verifies the no-tags case.
func TestSuggestedTagsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, SuggestedTags(nil, 6))
	assert.Empty(t, SuggestedTags([]domain.Note{{Title: "untagged"}}, 6))
}

// TestLinkedTaskCounts verifies per-objective task tallies.
func TestLinkedTaskCounts(t *testing.T) {
	t.Parallel()

	obj := domain.ID("obj-1")
	tasks := []domain.Task{
		{Title: "a", Status: domain.StatusDone, OKRID: obj},
		{Title: "b", Status: domain.StatusToDo, OKRID: obj},
		{Title: "c", Status: domain.StatusDone, OKRID: domain.ID("other")},
		{Title: "d", Status: domain.StatusToDo},
	}

	total, done := LinkedTaskCounts(tasks, obj)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, done)

	total, done = LinkedTaskCounts(tasks, domain.ID(""))
	assert.Zero(t, total)
	assert.Zero(t, done)
}
