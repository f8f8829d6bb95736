// Package clock provides an abstraction for time operations to improve testability.
// All derived-state computations (objective status, due-urgency, weekly stats)
// depend on "today", so they take a Clock instead of calling time.Now() directly.
package clock

import "time"

// Clock is an interface for time operations.
// This allows code to be tested with mock clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}

// Fixed returns a Clock that always reports t. It is the injection point
// for date-dependent logic in tests.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time {
	return f.t
}

// Midnight truncates t to the start of its day in local time.
// Due-date comparisons are date-only, so both sides are normalized with it.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
