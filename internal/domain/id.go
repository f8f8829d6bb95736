package domain

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
)

// ID is a record identifier. New records get UUIDs; identifiers loaded
// from legacy snapshots may be bare numbers (millisecond timestamps) and
// are preserved as their decimal string form.
type ID string

// NewID returns a fresh unique identifier.
// Timestamp-derived ids collide under rapid successive creates, so
// pmlite uses UUIDs instead.
func NewID() ID {
	return ID(uuid.NewString())
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id == ""
}

// String returns the id as a plain string.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string, a JSON number (legacy snapshots)
// or null (unlinked references).
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the id as a string, or null when unset so that
// unlinked task references round-trip as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(string(id))), nil
}
