// Package metrics derives read-only progress, health, and aggregate
// figures from the record types in internal/domain. Every function here
// is pure: it takes a snapshot of records (plus an injected clock where
// dates matter) and returns computed values without touching storage.
//
// Import rules:
//   - MAY import: internal/clock, internal/domain
//   - MUST NOT import: internal/store, internal/storage, internal/cli, internal/tui
package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/pmlite/pmlite/internal/clock"
	"github.com/pmlite/pmlite/internal/domain"
)

// ObjectiveStatus is the health classification of an objective.
type ObjectiveStatus string

// Objective status values, from best to worst.
const (
	StatusCompleted  ObjectiveStatus = "Completed"
	StatusOnTrack    ObjectiveStatus = "On Track"
	StatusInProgress ObjectiveStatus = "In Progress"
	StatusAtRisk     ObjectiveStatus = "At Risk"
	StatusOverdue    ObjectiveStatus = "Overdue"
	StatusNotStarted ObjectiveStatus = "Not Started"
)

// String returns the status as a string.
func (s ObjectiveStatus) String() string {
	return string(s)
}

// Progress returns the objective's completion percentage: the share of
// key results marked done, rounded to the nearest integer. An objective
// with no key results is 0% complete.
func Progress(o domain.Objective) int {
	if len(o.KeyResults) == 0 {
		return 0
	}
	done := 0
	for _, kr := range o.KeyResults {
		if kr.Done {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(o.KeyResults)) * 100))
}

// farFuture stands in for an unparseable due date: the objective is
// judged as if the deadline were comfortably far away.
const farFuture = 999

// daysUntil returns the number of whole days from the clock's current
// date until the due date, comparing at midnight so that partial days
// round up. A due date of today is 0, yesterday is -1.
func daysUntil(c clock.Clock, due string) int {
	t, ok := domain.ParseDate(due)
	if !ok {
		return farFuture
	}
	today := clock.Midnight(c.Now())
	return int(math.Ceil(clock.Midnight(t).Sub(today).Hours() / 24))
}

// ClassifyStatus grades an objective's health from its progress and due
// date. The first matching rule wins: a fully complete objective is
// Completed regardless of dates, a past-due one is Overdue, and
// otherwise the progress bar is held against tighter expectations the
// closer the deadline gets.
func ClassifyStatus(c clock.Clock, o domain.Objective) ObjectiveStatus {
	progress := Progress(o)
	if progress >= 100 {
		return StatusCompleted
	}

	days := daysUntil(c, o.Due)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= 7:
		if progress >= 80 {
			return StatusOnTrack
		}
		return StatusAtRisk
	case days <= 14:
		switch {
		case progress >= 60:
			return StatusOnTrack
		case progress >= 30:
			return StatusInProgress
		default:
			return StatusAtRisk
		}
	default:
		switch {
		case progress >= 70:
			return StatusOnTrack
		case progress >= 40:
			return StatusInProgress
		default:
			return StatusNotStarted
		}
	}
}

// DaysRemaining renders an objective's deadline distance as a short
// human label. An unparseable due date yields an empty string.
func DaysRemaining(c clock.Clock, due string) string {
	if _, ok := domain.ParseDate(due); !ok {
		return ""
	}
	days := daysUntil(c, due)
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// DueUrgency is a task deadline pressure bucket.
type DueUrgency string

// Due urgency values.
const (
	UrgencyNone    DueUrgency = ""
	UrgencyDueSoon DueUrgency = "due-soon"
	UrgencyOverdue DueUrgency = "overdue"
)

// DueStatus classifies a task's deadline pressure and provides a short
// label to display alongside it. Done tasks and tasks without a due
// date have no urgency.
func DueStatus(c clock.Clock, t domain.Task) (DueUrgency, string) {
	if t.Status == domain.StatusDone || t.Due == "" {
		return UrgencyNone, ""
	}
	if _, ok := domain.ParseDate(t.Due); !ok {
		return UrgencyNone, ""
	}
	days := daysUntil(c, t.Due)
	switch {
	case days < 0:
		return UrgencyOverdue, "Overdue"
	case days == 0:
		return UrgencyDueSoon, "Due today"
	case days <= 3:
		return UrgencyDueSoon, fmt.Sprintf("%dd left", days)
	default:
		return UrgencyNone, ""
	}
}

// TaskStats aggregates counts over a task snapshot.
type TaskStats struct {
	Total          int
	Done           int
	InProgress     int
	Todo           int
	HighPriority   int
	Overdue        int
	CompletionRate int
}

// ComputeTaskStats tallies a task snapshot. HighPriority counts open
// high-priority tasks; Overdue counts open tasks whose due date has
// passed the current instant (not midnight). CompletionRate is the
// done percentage rounded to the nearest integer, 0 for an empty
// snapshot.
func ComputeTaskStats(c clock.Clock, tasks []domain.Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	now := c.Now()
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusDone:
			stats.Done++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusToDo:
			stats.Todo++
		}
		if t.Priority == domain.PriorityHigh && t.Status != domain.StatusDone {
			stats.HighPriority++
		}
		if t.Status != domain.StatusDone {
			if due, ok := domain.ParseDate(t.Due); ok && due.Before(now) {
				stats.Overdue++
			}
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Done) / float64(stats.Total) * 100))
	}
	return stats
}

// NoteStats aggregates counts over a note snapshot.
type NoteStats struct {
	Total    int
	ByType   map[domain.NoteType]int
	ThisWeek int
}

// ComputeNoteStats tallies a note snapshot. ThisWeek counts notes dated
// within the last seven days, inclusive of today.
func ComputeNoteStats(c clock.Clock, notes []domain.Note) NoteStats {
	stats := NoteStats{
		Total:  len(notes),
		ByType: make(map[domain.NoteType]int, 4),
	}
	today := clock.Midnight(c.Now())
	weekAgo := today.AddDate(0, 0, -7)
	for _, n := range notes {
		stats.ByType[n.Type]++
		if d, ok := domain.ParseDate(n.Date); ok {
			day := clock.Midnight(d)
			if !day.Before(weekAgo) && !day.After(today) {
				stats.ThisWeek++
			}
		}
	}
	return stats
}

// TagCount pairs a tag with how many notes carry it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SuggestedTags returns the most frequent tags across the notes, at
// most limit entries, ordered by descending count with ties broken by
// first appearance.
func SuggestedTags(notes []domain.Note, limit int) []TagCount {
	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0
	for _, n := range notes {
		for _, tag := range n.Tags {
			if _, seen := counts[tag]; !seen {
				order[tag] = next
				next++
			}
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return order[result[i].Tag] < order[result[j].Tag]
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// LinkedTaskCounts returns, per objective id, how many tasks reference
// it and how many of those are done.
func LinkedTaskCounts(tasks []domain.Task, objectiveID domain.ID) (total, done int) {
	for _, t := range tasks {
		if t.OKRID != objectiveID || t.OKRID.IsZero() {
			continue
		}
		total++
		if t.Status == domain.StatusDone {
			done++
		}
	}
	return total, done
}
