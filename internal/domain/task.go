// Package domain provides the shared record types for pmlite: objectives
// with key results, backlog tasks, notes, and activity entries.
//
// JSON field names are camelCase to stay layout-compatible with snapshots
// written by earlier releases, and each collection carries an explicit
// migration step (see MigrateTasks, MigrateObjectives, MigrateNotes) that
// turns previous-shape records into current-shape records at load time.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
package domain

import (
	"fmt"
	"strings"

	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Priority represents the urgency level of a backlog task.
type Priority string

// Priority constants define the valid task urgency levels.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid checks if the priority is a valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// TaskStatus represents the backlog column a task belongs to.
// The status values double as the board's column names.
type TaskStatus string

// TaskStatus constants define the three backlog columns.
const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// ValidTaskStatuses returns all valid status values in column order.
func ValidTaskStatuses() []TaskStatus {
	return []TaskStatus{StatusToDo, StatusInProgress, StatusDone}
}

// IsValid checks if the status is a valid value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// canonicalTaskStatus maps legacy lowercase status spellings found in old
// snapshots to the current column names. Unknown values fall back to To Do.
func canonicalTaskStatus(s TaskStatus) TaskStatus {
	if s.IsValid() {
		return s
	}
	switch strings.ToLower(strings.TrimSpace(string(s))) {
	case "done":
		return StatusDone
	case "in-progress", "in progress":
		return StatusInProgress
	default:
		return StatusToDo
	}
}

// Effort represents the t-shirt size estimate of a task.
type Effort string

// Effort constants define the valid t-shirt sizes.
const (
	EffortXS Effort = "XS"
	EffortS  Effort = "S"
	EffortM  Effort = "M"
	EffortL  Effort = "L"
	EffortXL Effort = "XL"
)

// ValidEfforts returns all valid effort values, smallest first.
func ValidEfforts() []Effort {
	return []Effort{EffortXS, EffortS, EffortM, EffortL, EffortXL}
}

// IsValid checks if the effort is a valid value.
func (e Effort) IsValid() bool {
	switch e {
	case EffortXS, EffortS, EffortM, EffortL, EffortXL:
		return true
	default:
		return false
	}
}

// TagOptions returns the suggested tag labels for tasks. Tags are free
// strings; the suggestions are a convenience, not a restriction.
func TagOptions() []string {
	return []string{"Feature", "Bug", "Tech Debt", "Research", "Design", "Documentation"}
}

// Task represents a single unit of backlog work.
//
// Tasks are stored as one flat ordered sequence; Status partitions the
// sequence into the three board columns, and the relative order of
// matching entries within the sequence is the persisted column order.
type Task struct {
	// ID is the unique identifier for the task.
	ID ID `json:"id"`

	// Title is a short summary. Required.
	Title string `json:"title"`

	// Description is an optional longer explanation.
	Description string `json:"description"`

	// Priority is the urgency level (High, Medium, Low).
	Priority Priority `json:"priority"`

	// Status is the board column (To Do, In Progress, Done).
	Status TaskStatus `json:"status"`

	// Due is an optional date string (YYYY-MM-DD). Not guaranteed parseable.
	Due string `json:"due"`

	// Effort is the t-shirt size estimate (XS..XL).
	Effort Effort `json:"effort"`

	// Tags is a set-like sequence of free labels.
	Tags []string `json:"tags"`

	// OKRID is a weak reference to an Objective's id. Deleting the
	// objective never cascades; a dangling reference resolves as unlinked.
	OKRID ID `json:"okrId"`
}

// Validate checks the required-field invariant for tasks.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title is required", pmerrors.ErrEmptyValue)
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q is not a valid priority", pmerrors.ErrInvalidArgument, t.Priority)
	}
	if t.Status != "" && !t.Status.IsValid() {
		return fmt.Errorf("%w: %q is not a valid status", pmerrors.ErrInvalidArgument, t.Status)
	}
	if t.Effort != "" && !t.Effort.IsValid() {
		return fmt.Errorf("%w: %q is not a valid effort", pmerrors.ErrInvalidArgument, t.Effort)
	}
	return nil
}

// Normalize applies the backward-compatible default rules for a task
// loaded from storage: missing description -> "", missing effort -> M,
// missing tags -> empty, missing okrId -> unlinked, legacy status
// spellings -> canonical column names.
func (t *Task) Normalize() {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Effort == "" {
		t.Effort = EffortM
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Status = canonicalTaskStatus(t.Status)
}

// MigrateTasks normalizes a previous-shape task collection in place and
// returns it. It is the single load-time migration step for tasks.
func MigrateTasks(tasks []Task) []Task {
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks
}

// LookupObjective resolves a task's objective reference by identifier.
// It returns nil when id is unset or no objective matches, so dangling
// references resolve to "unlinked" rather than an error.
func LookupObjective(objectives []Objective, id ID) *Objective {
	if id.IsZero() {
		return nil
	}
	for i := range objectives {
		if objectives[i].ID == id {
			return &objectives[i]
		}
	}
	return nil
}

// SeedTasks returns the starter backlog written when no snapshot exists
// or the persisted one cannot be decoded.
func SeedTasks() []Task {
	return []Task{
		{
			ID:          "1",
			Title:       "Set up CI pipeline",
			Description: "Configure GitHub Actions for automated testing and deployment",
			Status:      StatusToDo,
			Priority:    PriorityHigh,
			Due:         "2025-02-15",
			Effort:      EffortM,
			Tags:        []string{"Tech Debt"},
		},
		{
			ID:          "2",
			Title:       "Fix login bug",
			Description: "Users unable to login with special characters in password",
			Status:      StatusInProgress,
			Priority:    PriorityMedium,
			Due:         "2025-01-10",
			Effort:      EffortS,
			Tags:        []string{"Bug"},
		},
		{
			ID:          "3",
			Title:       "Write test cases",
			Description: "Add unit tests for authentication module",
			Status:      StatusToDo,
			Priority:    PriorityLow,
			Due:         "2025-02-28",
			Effort:      EffortL,
			Tags:        []string{"Tech Debt"},
		},
		{
			ID:          "4",
			Title:       "Deploy to staging",
			Description: "Push latest build to staging environment",
			Status:      StatusDone,
			Priority:    PriorityHigh,
			Due:         "2025-01-05",
			Effort:      EffortXS,
			Tags:        []string{"Feature"},
		},
	}
}
