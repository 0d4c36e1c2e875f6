/*
store.go - Persistence interfaces for rota data

PURPOSE:
  Defines the boundary between the resolution engine and the database.
  Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  DefaultStore:  Weekly default patterns, upsert keyed on (employee, weekday)
  OverrideStore: Date overrides, upsert keyed on (employee, date)
  Directory:     Employee/department roster reads (plus thin admin writes
                 used by the surrounding CRUD layer, never by the engine)

UPSERT CONTRACT:
  Both rota stores are keyed-upsert stores: at most one live row per key,
  with the uniqueness constraint as the backstop. Concurrent writers to the
  same key race at the storage layer; last writer wins. Accepted trade-off
  for a low-contention internal tool - no optimistic-concurrency token.

SNAPSHOT READS:
  Readers fetch their own snapshot of rows per request and compute over it.
  A read racing a write observes either the pre- or post-write state, never
  a torn one, because resolution reads at most one row per key.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - rota/store/memory.go:   In-memory for testing/dev
*/
package rota

import "context"

// =============================================================================
// DEFAULT PATTERN STORE
// =============================================================================

// DefaultStore persists weekly default patterns.
type DefaultStore interface {
	// GetDefaults returns default rows for the given employees, or for the
	// whole organization when employeeIDs is empty. Ordered by weekday.
	GetDefaults(ctx context.Context, employeeIDs []EmployeeID) ([]DefaultEntry, error)

	// UpsertDefaults writes rows keyed on (employee, weekday), replacing
	// existing values for the same key. Rows for omitted weekdays are left
	// untouched. The batch is applied atomically.
	UpsertDefaults(ctx context.Context, rows []DefaultEntry) error
}

// =============================================================================
// OVERRIDE STORE
// =============================================================================

// OverrideStore persists date-specific overrides.
type OverrideStore interface {
	// GetOverrides returns override rows with from <= date <= to, for the
	// given employees or the whole organization when employeeIDs is empty.
	GetOverrides(ctx context.Context, from, to Date, employeeIDs []EmployeeID) ([]Override, error)

	// UpsertOverride writes one row keyed on (employee, date), replacing
	// any prior override for that exact date.
	UpsertOverride(ctx context.Context, row Override) error

	// DeleteOverride removes the (employee, date) row. Deleting an absent
	// row is a no-op, not an error.
	DeleteOverride(ctx context.Context, employeeID EmployeeID, date Date) error
}

// =============================================================================
// EMPLOYEE DIRECTORY
// =============================================================================

// Directory provides the roster. The engine only calls the List methods;
// the Save methods exist for the surrounding admin CRUD layer.
type Directory interface {
	// ListEmployees returns employees sorted by name, optionally filtered
	// by department.
	ListEmployees(ctx context.Context, departmentID string) ([]Employee, error)

	// ListDepartments returns all departments sorted by name.
	ListDepartments(ctx context.Context) ([]Department, error)

	SaveEmployee(ctx context.Context, e Employee) error
	SaveDepartment(ctx context.Context, d Department) error
}

// Store bundles everything a full deployment needs.
type Store interface {
	DefaultStore
	OverrideStore
	Directory
}
