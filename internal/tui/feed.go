package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmlite/pmlite/internal/domain"
)

// ActivityFeedConfig configures the activity feed display.
type ActivityFeedConfig struct {
	// MaxLines is the maximum number of entries to display.
	MaxLines int

	// Width is the box width.
	Width int

	// Title is the box title.
	Title string

	// ShowTimestamps shows relative timestamps for each entry.
	ShowTimestamps bool
}

// DefaultActivityFeedConfig returns the default configuration.
func DefaultActivityFeedConfig() ActivityFeedConfig {
	return ActivityFeedConfig{
		MaxLines:       5,
		Width:          60,
		Title:          "Recent Activity",
		ShowTimestamps: true,
	}
}

// RenderActivityFeed returns the activity entries as a bordered box.
// Entries are expected newest first and are shown in that order.
func RenderActivityFeed(entries []domain.ActivityEntry, config ActivityFeedConfig) string {
	if config.MaxLines <= 0 {
		config.MaxLines = 5
	}
	if config.Width <= 0 {
		config.Width = 60
	}
	if config.Title == "" {
		config.Title = "Recent Activity"
	}

	styles := NewOutputStyles()

	if len(entries) > config.MaxLines {
		entries = entries[:config.MaxLines]
	}

	var lines []string
	if len(entries) == 0 {
		lines = append(lines, styles.Dim.Render("No activity yet"))
	}
	contentWidth := config.Width - 4
	for _, entry := range entries {
		line := Truncate(entry.Action, contentWidth)
		if config.ShowTimestamps {
			stamp := styles.Dim.Render(RelativeTime(entry.Timestamp))
			line = Truncate(entry.Action, contentWidth-12) + " " + stamp
		}
		lines = append(lines, line)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		Width(config.Width)

	title := StyleBold.Render(config.Title)
	return box.Render(title + "\n" + strings.Join(lines, "\n"))
}
