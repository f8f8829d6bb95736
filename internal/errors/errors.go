// Package errors provides centralized error handling for pmlite.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyValue indicates that a required value was empty.
	// Record stores return it when a create/update violates the
	// required-field invariant (task/objective title, note title+content).
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrNotFound indicates that a record with the given id does not exist.
	// Callers treat it as a no-op signal rather than a failure.
	ErrNotFound = errors.New("record not found")

	// ErrNotConfirmed indicates that a destructive operation was attempted
	// without the explicit confirmation gate.
	ErrNotConfirmed = errors.New("operation not confirmed")

	// ErrInvalidArgument indicates that an argument value is outside the
	// accepted set (unknown priority, status, effort, note type or column).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrKeyNotFound indicates that a storage key is absent.
	// Stores recover from it by substituting a default collection.
	ErrKeyNotFound = errors.New("storage key not found")

	// ErrMalformedRecord indicates that a persisted value could not be
	// decoded. Stores recover from it the same way as ErrKeyNotFound.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrStorageUnavailable indicates that the storage backend could not
	// be reached (redis connection failure, unreadable data directory).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidCredentials indicates the demo credential pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrUserInputRequired indicates that a required flag or argument was
	// not supplied in non-interactive mode.
	ErrUserInputRequired = errors.New("user input required")
)
