package domain

import "time"

// ActivityEntry is an append-only log line recording a mutation.
// Entries are kept newest first and grow without rotation until an
// explicit clear removes the whole feed.
type ActivityEntry struct {
	// Action is a human-readable summary, e.g. "Created task: Fix login bug".
	Action string `json:"action"`

	// Timestamp is when the mutation happened (ISO-8601 in storage).
	Timestamp time.Time `json:"timestamp"`
}

// Date parsing layouts accepted for the free-text due/date fields.
// The sentinel "End of Quarter" and arbitrary text simply fail to parse.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"Jan 2, 2006",
}

// ParseDate parses a stored date string. The boolean is false for empty
// strings, the End-of-Quarter sentinel and anything else unparseable.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
