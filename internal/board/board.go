// Package board implements the kanban view over the task collection:
// partitioning the single stored sequence into status columns and the
// drag-style reorder operation.
//
// Import rules:
//   - MAY import: internal/domain
//   - MUST NOT import: internal/store, internal/storage, internal/cli, internal/tui
package board

import (
	"fmt"

	"github.com/pmlite/pmlite/internal/domain"
)

// Move describes a reorder request: pick the task at SrcIdx within the
// SrcCol column and drop it at DstIdx within DstCol. Indexes are
// positions within the filtered column, not the global sequence.
type Move struct {
	SrcCol domain.TaskStatus
	SrcIdx int
	DstCol domain.TaskStatus
	DstIdx int
}

// Column returns the tasks belonging to one status column, in stored
// order. The result is a fresh slice; the input is not modified.
func Column(tasks []domain.Task, status domain.TaskStatus) []domain.Task {
	column := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			column = append(column, t)
		}
	}
	return column
}

// Columns partitions the tasks into the three status columns, keyed in
// ValidTaskStatuses order.
func Columns(tasks []domain.Task) map[domain.TaskStatus][]domain.Task {
	columns := make(map[domain.TaskStatus][]domain.Task, 3)
	for _, status := range domain.ValidTaskStatuses() {
		columns[status] = Column(tasks, status)
	}
	return columns
}

// Reorder applies a move to the task sequence and returns the new
// sequence, an activity message to log (empty for same-column moves),
// and whether anything changed.
//
// Same-column moves splice within the column and then rebuild the
// global sequence as all other tasks followed by the reordered column.
// The reordered column therefore migrates to the tail of the stored
// sequence. Position is only ever observed per column, so this is
// kept as-is for snapshot compatibility with earlier versions.
//
// Cross-column moves re-stamp the task's status and leave its global
// position alone; DstIdx is accepted but ignored, so the task lands
// wherever its stored position falls within the destination column.
//
// An invalid destination column or out-of-range source index returns
// the input unchanged.
func Reorder(tasks []domain.Task, m Move) ([]domain.Task, string, bool) {
	if !m.DstCol.IsValid() || !m.SrcCol.IsValid() {
		return tasks, "", false
	}

	column := Column(tasks, m.SrcCol)
	if m.SrcIdx < 0 || m.SrcIdx >= len(column) {
		return tasks, "", false
	}
	moved := column[m.SrcIdx]

	// Global position of the moved task, needed for cross-column moves.
	globalIdx := -1
	seen := 0
	for i, t := range tasks {
		if t.Status == m.SrcCol {
			if seen == m.SrcIdx {
				globalIdx = i
				break
			}
			seen++
		}
	}

	if m.SrcCol == m.DstCol {
		column = append(column[:m.SrcIdx], column[m.SrcIdx+1:]...)
		dst := m.DstIdx
		if dst < 0 {
			dst = 0
		}
		if dst > len(column) {
			dst = len(column)
		}
		column = append(column[:dst], append([]domain.Task{moved}, column[dst:]...)...)

		rebuilt := make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status != m.SrcCol {
				rebuilt = append(rebuilt, t)
			}
		}
		for _, t := range column {
			t.Status = m.SrcCol
			rebuilt = append(rebuilt, t)
		}
		return rebuilt, "", true
	}

	rebuilt := make([]domain.Task, len(tasks))
	copy(rebuilt, tasks)
	rebuilt[globalIdx].Status = m.DstCol
	message := fmt.Sprintf("Moved task '%s' from %s to %s", moved.Title, m.SrcCol, m.DstCol)
	return rebuilt, message, true
}
