package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmlite/pmlite/internal/board"
	"github.com/pmlite/pmlite/internal/domain"
	"github.com/pmlite/pmlite/internal/metrics"
)

// BoardConfig configures the kanban board rendering.
type BoardConfig struct {
	// ColumnWidth is the inner width of each column.
	ColumnWidth int
	// Objectives resolves task OKR links to titles on the cards.
	// Dangling references render as unlinked.
	Objectives []domain.Objective
}

// DefaultBoardConfig returns the default board configuration.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{ColumnWidth: 28}
}

// RenderBoard returns the tasks laid out as three kanban columns.
// Cards show the column-relative index used by `pmlite task move`.
func RenderBoard(tasks []domain.Task, config BoardConfig) string {
	if config.ColumnWidth <= 0 {
		config.ColumnWidth = 28
	}

	styles := NewOutputStyles()
	columnStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		Width(config.ColumnWidth)
	priorityColors := PriorityColors()

	rendered := make([]string, 0, 3)
	for _, status := range domain.ValidTaskStatuses() {
		column := board.Column(tasks, status)

		header := StyleBold.Render(fmt.Sprintf("%s %s (%d)", TaskStatusIcon(status), status, len(column)))
		lines := []string{header, ""}

		if len(column) == 0 {
			lines = append(lines, styles.Dim.Render("empty"))
		}
		for i, t := range column {
			title := Truncate(t.Title, config.ColumnWidth-8)
			marker := lipgloss.NewStyle().
				Foreground(priorityColors[t.Priority]).
				Render("▌")
			lines = append(lines, fmt.Sprintf("%s %d. %s", marker, i+1, title))

			meta := make([]string, 0, 3)
			meta = append(meta, string(t.Effort))
			if urgency, label := metrics.DueStatus(DefaultClock, t); urgency != metrics.UrgencyNone {
				meta = append(meta, UrgencyStyle(urgency).Render(label))
			} else if t.Due != "" && t.Status != domain.StatusDone {
				meta = append(meta, t.Due)
			}
			if len(t.Tags) > 0 {
				meta = append(meta, strings.Join(t.Tags, ","))
			}
			if linked := domain.LookupObjective(config.Objectives, t.OKRID); linked != nil {
				meta = append(meta, "◎ "+Truncate(linked.Title, config.ColumnWidth-10))
			}
			lines = append(lines, styles.Dim.Render("   "+strings.Join(meta, " · ")))
		}

		rendered = append(rendered, columnStyle.Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
