// Package tui provides terminal user interface components for pmlite.
//
// This package provides a centralized style system using Lip Gloss for
// consistent component styling. All colors use AdaptiveColor for
// light/dark terminal support.
//
// Call CheckNoColor() at the start of commands to respect the NO_COLOR
// environment variable. Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/pmlite/pmlite/internal/domain"
	"github.com/pmlite/pmlite/internal/metrics"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active states and primary actions.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for done items and healthy statuses.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used for at-risk and due-soon items.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for overdue items.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for dim/inactive states and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for
// light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Info:    lipgloss.NewStyle().Foreground(ColorPrimary),
		Dim:     lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// TableStyles holds lipgloss styles for table rendering.
type TableStyles struct {
	Header lipgloss.Style
	Cell   lipgloss.Style
	Dim    lipgloss.Style
}

// NewTableStyles creates styles for table rendering.
func NewTableStyles() *TableStyles {
	return &TableStyles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}),
		Cell: lipgloss.NewStyle(),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string)
// or TERM=dumb, following https://no-color.org/.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// ObjectiveStatusColors returns the semantic color for each objective
// health classification.
func ObjectiveStatusColors() map[metrics.ObjectiveStatus]lipgloss.AdaptiveColor {
	return map[metrics.ObjectiveStatus]lipgloss.AdaptiveColor{
		metrics.StatusCompleted:  ColorSuccess,
		metrics.StatusOnTrack:    ColorSuccess,
		metrics.StatusInProgress: ColorPrimary,
		metrics.StatusAtRisk:     ColorWarning,
		metrics.StatusOverdue:    ColorError,
		metrics.StatusNotStarted: ColorMuted,
	}
}

// ObjectiveStatusIcon returns the icon for an objective health
// classification. Icon, color, and text are always shown together so
// no single channel carries the status alone.
func ObjectiveStatusIcon(status metrics.ObjectiveStatus) string {
	icons := map[metrics.ObjectiveStatus]string{
		metrics.StatusCompleted:  "✓",
		metrics.StatusOnTrack:    "●",
		metrics.StatusInProgress: "⟳",
		metrics.StatusAtRisk:     "⚠",
		metrics.StatusOverdue:    "✗",
		metrics.StatusNotStarted: "○",
	}
	if icon, ok := icons[status]; ok {
		return icon
	}
	return "?"
}

// TaskStatusIcon returns the icon for a backlog column.
func TaskStatusIcon(status domain.TaskStatus) string {
	icons := map[domain.TaskStatus]string{
		domain.StatusToDo:       "○",
		domain.StatusInProgress: "●",
		domain.StatusDone:       "✓",
	}
	if icon, ok := icons[status]; ok {
		return icon
	}
	return "?"
}

// PriorityColors returns the semantic color for each task priority.
func PriorityColors() map[domain.Priority]lipgloss.AdaptiveColor {
	return map[domain.Priority]lipgloss.AdaptiveColor{
		domain.PriorityHigh:   ColorError,
		domain.PriorityMedium: ColorWarning,
		domain.PriorityLow:    ColorMuted,
	}
}

// UrgencyStyle returns the style for a task due-urgency bucket.
func UrgencyStyle(urgency metrics.DueUrgency) lipgloss.Style {
	switch urgency {
	case metrics.UrgencyOverdue:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	case metrics.UrgencyDueSoon:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted)
	}
}
