// Package testutil provides shared test fixtures for pmlite.
//
// It holds mock errors used to simulate storage and network failures.
// Only _test.go files should import it.
package testutil

import "errors"

// Mock errors for simulating failure scenarios in tests.
var (
	// ErrMockStorage simulates a storage backend failure.
	ErrMockStorage = errors.New("storage failure")

	// ErrMockNetwork simulates a network error, e.g. a dropped redis
	// connection.
	ErrMockNetwork = errors.New("network error")

	// ErrMockNotFound simulates a missing resource.
	ErrMockNotFound = errors.New("not found")
)
