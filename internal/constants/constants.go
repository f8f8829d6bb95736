// Package constants provides centralized constant values used throughout pmlite.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory names and paths used by pmlite for organizing data.
const (
	// PMLiteHome is the hidden directory name where pmlite stores all its data.
	// This directory is created in the user's home directory.
	PMLiteHome = ".pmlite"

	// DataDir is the directory name where the file storage backend keeps
	// one JSON document per storage key.
	DataDir = "data"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating CLI log file.
	CLILogFileName = "pmlite.log"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
)

// Storage keys. All persisted state lives under these keys in the
// configured key-value backend.
const (
	// KeyTasks holds the backlog task collection.
	KeyTasks = "tasks"

	// KeyObjectives holds the objective collection.
	KeyObjectives = "objectives"

	// KeyObjectivesTitle holds the OKR page heading override.
	KeyObjectivesTitle = "objectives_title"

	// KeyNotes holds the note collection, newest first.
	KeyNotes = "notes"

	// KeyActivityLog holds the activity feed, newest first.
	// Clearing the feed removes the key entirely.
	KeyActivityLog = "activity_log"

	// KeyUserEmail holds the signed-in user's email.
	KeyUserEmail = "user_email"

	// KeyIsAuthenticated holds the cosmetic session flag.
	KeyIsAuthenticated = "is_authenticated"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before log rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated log files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated log file.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Display defaults shared by dashboard and activity commands.
const (
	// DefaultPageTitle is the OKR page heading before any override is saved.
	DefaultPageTitle = "Q2 2025 OKRs"

	// DefaultOwner is the display owner assigned to new objectives.
	DefaultOwner = "You"

	// DueEndOfQuarter is the free-text due sentinel used when an objective
	// is created without a date. It is display text, not a parseable date.
	DueEndOfQuarter = "End of Quarter"

	// RecentActivityLimit is the number of entries the dashboard shows.
	RecentActivityLimit = 5

	// SuggestedTagLimit is the number of tags the note entry form suggests.
	SuggestedTagLimit = 6
)

// Demo credentials for the cosmetic login flow. Authentication is not a
// security boundary in pmlite; the pair only gates the dashboard greeting.
const (
	DemoEmail    = "demo@pmlite.io"
	DemoPassword = "demo123"
)
