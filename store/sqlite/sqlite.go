/*
Package sqlite provides a SQLite-backed implementation of the rota storage
interfaces.

PURPOSE:
  Implements rota.DefaultStore, rota.OverrideStore, and rota.Directory using
  SQLite. In production the same patterns apply to PostgreSQL - only minor
  SQL dialect differences.

KEY TABLES:
  departments:    Department records
  employees:      Roster entries, optional department link
  rota_defaults:  Weekly patterns, UNIQUE(employee_id, day_of_week)
  rota_overrides: Date overrides, UNIQUE(employee_id, date)

UPSERT ENFORCEMENT:
  Both rota tables carry a uniqueness constraint on their natural key and
  are written with INSERT ... ON CONFLICT DO UPDATE. The constraint is the
  backstop for the at-most-one-live-row invariant; concurrent writers to
  the same key resolve to last-writer-wins.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, a single writer at a time.

USAGE:
  store, err := sqlite.New("./data/rota.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - rota/store.go:        Interface definitions
  - rota/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/rota-engine/rota"
)

// Store implements all rota storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ rota.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS departments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'employee',
		department_id TEXT REFERENCES departments(id),
		avatar_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_department
		ON employees(department_id);

	-- Weekly default patterns. day_of_week: 0=Sunday .. 4=Thursday.
	CREATE TABLE IF NOT EXISTS rota_defaults (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 0 AND 4),
		location TEXT NOT NULL CHECK (location IN ('office', 'home')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, day_of_week)
	);

	-- Date-specific overrides. At most one live row per (employee, date).
	CREATE TABLE IF NOT EXISTS rota_overrides (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		date TEXT NOT NULL,
		location TEXT NOT NULL CHECK (location IN ('office', 'home')),
		notes TEXT,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_overrides_date
		ON rota_overrides(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// =============================================================================
// DIRECTORY
// =============================================================================

// ListEmployees returns employees sorted by name, joined to their
// department for display. Pass an empty departmentID for the full roster.
func (s *Store) ListEmployees(ctx context.Context, departmentID string) ([]rota.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT e.id, e.name, e.role, COALESCE(e.department_id, ''),
		       COALESCE(d.name, ''), COALESCE(e.avatar_url, '')
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id`
	args := []any{}
	if departmentID != "" {
		query += ` WHERE e.department_id = ?`
		args = append(args, departmentID)
	}
	query += ` ORDER BY e.name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var result []rota.Employee
	for rows.Next() {
		var e rota.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.DepartmentID, &e.DepartmentName, &e.AvatarURL); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (s *Store) ListDepartments(ctx context.Context) ([]rota.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var result []rota.Department
	for rows.Next() {
		var d rota.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (s *Store) SaveEmployee(ctx context.Context, e rota.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = rota.EmployeeID(uuid.NewString())
	}
	if e.Role == "" {
		e.Role = "employee"
	}
	var deptID any
	if e.DepartmentID != "" {
		deptID = e.DepartmentID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, role, department_id, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			department_id = excluded.department_id,
			avatar_url = excluded.avatar_url`,
		string(e.ID), e.Name, e.Role, deptID, e.AvatarURL, nowISO())
	if err != nil {
		return fmt.Errorf("save employee: %w", err)
	}
	return nil
}

func (s *Store) SaveDepartment(ctx context.Context, d rota.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO departments (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		d.ID, d.Name, nowISO())
	if err != nil {
		return fmt.Errorf("save department: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULT PATTERN STORE
// =============================================================================

func (s *Store) GetDefaults(ctx context.Context, employeeIDs []rota.EmployeeID) ([]rota.DefaultEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT employee_id, day_of_week, location FROM rota_defaults`
	args := []any{}
	if len(employeeIDs) > 0 {
		query += ` WHERE employee_id IN (` + placeholders(len(employeeIDs)) + `)`
		for _, id := range employeeIDs {
			args = append(args, string(id))
		}
	}
	query += ` ORDER BY employee_id, day_of_week`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get defaults: %w", err)
	}
	defer rows.Close()

	var result []rota.DefaultEntry
	for rows.Next() {
		var entry rota.DefaultEntry
		var weekday int
		if err := rows.Scan(&entry.EmployeeID, &weekday, &entry.Location); err != nil {
			return nil, fmt.Errorf("scan default: %w", err)
		}
		entry.Weekday = rota.Weekday(weekday)
		result = append(result, entry)
	}
	return result, rows.Err()
}

// UpsertDefaults writes the batch in one transaction so a pattern change
// lands together.
func (s *Store) UpsertDefaults(ctx context.Context, entries []rota.DefaultEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert defaults: %w", err)
	}
	defer tx.Rollback()

	now := nowISO()
	for _, entry := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rota_defaults (id, employee_id, day_of_week, location, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(employee_id, day_of_week) DO UPDATE SET
				location = excluded.location,
				updated_at = excluded.updated_at`,
			uuid.NewString(), string(entry.EmployeeID), int(entry.Weekday), string(entry.Location), now, now)
		if err != nil {
			return fmt.Errorf("upsert default (%s, %d): %w", entry.EmployeeID, entry.Weekday, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// OVERRIDE STORE
// =============================================================================

func (s *Store) GetOverrides(ctx context.Context, from, to rota.Date, employeeIDs []rota.EmployeeID) ([]rota.Override, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, date, location, COALESCE(notes, ''), created_by
		FROM rota_overrides
		WHERE date >= ? AND date <= ?`
	args := []any{from.String(), to.String()}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id IN (` + placeholders(len(employeeIDs)) + `)`
		for _, id := range employeeIDs {
			args = append(args, string(id))
		}
	}
	query += ` ORDER BY date, employee_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get overrides: %w", err)
	}
	defer rows.Close()

	var result []rota.Override
	for rows.Next() {
		var o rota.Override
		var dateStr string
		if err := rows.Scan(&o.ID, &o.EmployeeID, &dateStr, &o.Location, &o.Notes, &o.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		date, err := rota.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("scan override date: %w", err)
		}
		o.Date = date
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s *Store) UpsertOverride(ctx context.Context, o rota.Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := nowISO()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rota_overrides (id, employee_id, date, location, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			location = excluded.location,
			notes = excluded.notes,
			created_by = excluded.created_by,
			updated_at = excluded.updated_at`,
		o.ID, string(o.EmployeeID), o.Date.String(), string(o.Location), o.Notes, o.CreatedBy, now, now)
	if err != nil {
		return fmt.Errorf("upsert override (%s, %s): %w", o.EmployeeID, o.Date, err)
	}
	return nil
}

func (s *Store) DeleteOverride(ctx context.Context, employeeID rota.EmployeeID, date rota.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deleting an absent row is a no-op, not an error.
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM rota_overrides WHERE employee_id = ? AND date = ?`,
		string(employeeID), date.String())
	if err != nil {
		return fmt.Errorf("delete override (%s, %s): %w", employeeID, date, err)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
