package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pmlite/pmlite/internal/constants"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Objective represents a goal with a title, due date, owner and key results.
// Progress is always derived from the key results, never stored.
type Objective struct {
	// ID is the unique identifier for the objective.
	ID ID `json:"id"`

	// Title is a short statement of the goal. Required.
	Title string `json:"title"`

	// Owner is a display string, defaulted to constants.DefaultOwner.
	Owner string `json:"owner"`

	// Due is either a date string (YYYY-MM-DD) or the free-text sentinel
	// constants.DueEndOfQuarter. It is not guaranteed parseable.
	Due string `json:"due"`

	// KeyResults is the ordered sequence of boolean-completable sub-goals.
	// Order is display order.
	KeyResults []KeyResult `json:"keyResults"`
}

// KeyResult is a boolean-completable sub-goal of an objective.
type KeyResult struct {
	// Text describes the sub-goal. Blank texts are dropped at create time.
	Text string `json:"text"`

	// Done marks the sub-goal complete.
	Done bool `json:"done"`
}

// UnmarshalJSON migrates legacy key results that carried a percentage
// `progress` field instead of `done`: done = (progress >= 100).
func (kr *KeyResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text     string   `json:"text"`
		Done     *bool    `json:"done"`
		Progress *float64 `json:"progress"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kr.Text = raw.Text
	switch {
	case raw.Done != nil:
		kr.Done = *raw.Done
	case raw.Progress != nil:
		kr.Done = *raw.Progress >= 100
	default:
		kr.Done = false
	}
	return nil
}

// Validate checks the required-field invariant for objectives.
func (o *Objective) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("%w: objective title is required", pmerrors.ErrEmptyValue)
	}
	return nil
}

// Normalize applies default rules for an objective loaded from storage.
func (o *Objective) Normalize() {
	if o.Owner == "" {
		o.Owner = constants.DefaultOwner
	}
	if o.Due == "" {
		o.Due = constants.DueEndOfQuarter
	}
	if o.KeyResults == nil {
		o.KeyResults = []KeyResult{}
	}
}

// MigrateObjectives normalizes a previous-shape objective collection in
// place and returns it. Key-result migration happens during decode, so
// this only fills defaulted fields.
func MigrateObjectives(objectives []Objective) []Objective {
	for i := range objectives {
		objectives[i].Normalize()
	}
	return objectives
}

// TrimKeyResults drops key results whose text is blank, preserving order.
// The entry form always shows one empty row, so create and edit both run
// submitted key results through this.
func TrimKeyResults(krs []KeyResult) []KeyResult {
	out := make([]KeyResult, 0, len(krs))
	for _, kr := range krs {
		if strings.TrimSpace(kr.Text) == "" {
			continue
		}
		out = append(out, kr)
	}
	return out
}
