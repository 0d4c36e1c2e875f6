/*
errors.go - Centralized error types for the rota engine

PURPOSE:
  All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Validation errors - malformed mutation input, rejected before storage
  2. Authentication errors - mutation without a resolved acting user
  3. Persistence errors - store operation failed, surfaced opaquely

NOTE ON READS:
  Missing defaults or overrides are NOT errors. They are valid inputs to
  the fail-open resolution policy: an employee with no configured pattern
  resolves to the office.

USAGE:
  if errors.Is(err, rota.ErrNotAuthenticated) { ... 401 ... }
  if rota.IsClientError(err) { ... 400 ... }
*/
package rota

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotAuthenticated is returned when a mutation is attempted without
	// an acting-user identity. Role gating lives in the calling layer; this
	// core only checks that someone is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotSunday is returned when a week-start date is not a Sunday.
	ErrNotSunday = errors.New("week start must be a Sunday")

	// ErrInvalidWeekday is returned for a default-pattern entry outside the
	// Sunday..Thursday work week.
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 4 (Thursday)")

	// ErrInvalidLocation is returned for a location outside the office|home enum.
	ErrInvalidLocation = errors.New(`location must be "office" or "home"`)

	// ErrInvalidEmployee is returned when a mutation names no employee.
	ErrInvalidEmployee = errors.New("employee id is required")

	// ErrNoEntries is returned when a set-defaults call carries no entries.
	ErrNoEntries = errors.New("at least one default entry is required")

	// ErrOperationFailed is the opaque failure reported to callers when the
	// underlying store rejects a mutation. Detail is logged server-side.
	ErrOperationFailed = errors.New("operation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PersistenceError wraps a store failure. Its message is intentionally
// opaque; the underlying cause is kept for server-side logging only.
type PersistenceError struct {
	Op  string // e.g. "upsert override"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrOperationFailed, e.Op)
}

func (e *PersistenceError) Unwrap() error { return ErrOperationFailed }

// Cause exposes the underlying store error for logging. Never sent to clients.
func (e *PersistenceError) Cause() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotSunday) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrInvalidLocation) ||
		errors.Is(err, ErrInvalidEmployee) ||
		errors.Is(err, ErrNoEntries)
}

// IsAuthError returns true if the error indicates a missing acting user.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}
