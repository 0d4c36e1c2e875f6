/*
service.go - Read orchestration and the mutation surface

PURPOSE:
  Service is the request-scoped entry point around the pure builders:

  Reads:  fetch roster + rows once per request, index them, resolve.
          No cross-request caching or shared mutable state - a mutation's
          effect is visible on the very next read.

  Writes: validate input, require an authenticated actor, then a single
          keyed upsert/delete against the store. Store failures surface as
          an opaque PersistenceError; the underlying cause is logged here
          with detail and never sent to callers.

AUTHORIZATION:
  The service checks only "is a logged-in user". Role gating (is this
  caller a manager/admin for this employee) belongs to the calling layer,
  which hands the service an already-authorized actor.

CLOCK:
  "Today" is derived from an injected clock in the fixed organization
  timezone, never from ad-hoc time.Now() reads inside the builders.
*/
package rota

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Actor identifies the authenticated user performing a mutation.
// Authentication itself happens outside this core.
type Actor struct {
	ID string
}

// Authenticated reports whether an acting user was resolved.
func (a Actor) Authenticated() bool { return a.ID != "" }

// Clock supplies the current instant. Injected for testability.
type Clock func() time.Time

// Service wires the stores, directory, organization timezone, and clock.
type Service struct {
	directory Directory
	defaults  DefaultStore
	overrides OverrideStore
	tz        *time.Location
	now       Clock
	logger    *zap.Logger
}

// NewService creates a Service. A nil logger falls back to a no-op logger;
// a nil timezone falls back to the organization default.
func NewService(store Store, tz *time.Location, logger *zap.Logger) *Service {
	if tz == nil {
		tz, _ = time.LoadLocation(DefaultTimezone)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		directory: store,
		defaults:  store,
		overrides: store,
		tz:        tz,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the clock. For tests with fixed dates.
func (s *Service) WithClock(c Clock) *Service {
	s.now = c
	return s
}

// Timezone returns the fixed organization timezone.
func (s *Service) Timezone() *time.Location { return s.tz }

// Today returns the current date in the organization timezone.
func (s *Service) Today() Date { return DateIn(s.now(), s.tz) }

// =============================================================================
// READS
// =============================================================================

// WeekView builds the week grid for a Sunday week start, optionally
// filtered by department.
func (s *Service) WeekView(ctx context.Context, weekStart Date, departmentID string) ([]WeekViewEntry, error) {
	roster, defaults, overrides, err := s.fetchWeek(ctx, weekStart, departmentID)
	if err != nil {
		return nil, err
	}
	return BuildWeek(weekStart, roster, defaults, overrides)
}

// WeekSummary builds attendance aggregates for a Sunday week start.
func (s *Service) WeekSummary(ctx context.Context, weekStart Date, departmentID string) (WeekSummary, error) {
	roster, defaults, overrides, err := s.fetchWeek(ctx, weekStart, departmentID)
	if err != nil {
		return WeekSummary{}, err
	}
	return BuildWeekSummary(weekStart, roster, defaults, overrides)
}

// TodaySnapshot resolves the whole roster for today (organization timezone)
// and partitions it into office/home groups. On Friday/Saturday the
// snapshot is empty with Workday=false; no store reads are made.
func (s *Service) TodaySnapshot(ctx context.Context) (TodaySnapshot, error) {
	today := s.Today()
	if !today.IsWorkday() {
		return TodaySnapshot{Date: today, Office: []PresenceEntry{}, Home: []PresenceEntry{}}, nil
	}

	roster, err := s.directory.ListEmployees(ctx, "")
	if err != nil {
		return TodaySnapshot{}, s.persistence("list employees", err)
	}
	if len(roster) == 0 {
		return TodaySnapshot{Date: today, Workday: true, Office: []PresenceEntry{}, Home: []PresenceEntry{}}, nil
	}

	ids := employeeIDs(roster)
	defaultRows, err := s.defaults.GetDefaults(ctx, ids)
	if err != nil {
		return TodaySnapshot{}, s.persistence("load defaults", err)
	}
	overrideRows, err := s.overrides.GetOverrides(ctx, today, today, ids)
	if err != nil {
		return TodaySnapshot{}, s.persistence("load overrides", err)
	}

	return BuildToday(today, roster, IndexDefaults(defaultRows), IndexOverrides(overrideRows)), nil
}

// fetchWeek pulls the roster and the week's rows in one request-scoped
// snapshot. Week-start validation runs first so a bad date never touches
// the store.
func (s *Service) fetchWeek(ctx context.Context, weekStart Date, departmentID string) ([]Employee, DefaultIndex, OverrideIndex, error) {
	dates, err := WeekDates(weekStart)
	if err != nil {
		return nil, nil, nil, err
	}

	roster, err := s.directory.ListEmployees(ctx, departmentID)
	if err != nil {
		return nil, nil, nil, s.persistence("list employees", err)
	}
	if len(roster) == 0 {
		return nil, nil, nil, nil
	}

	ids := employeeIDs(roster)
	defaultRows, err := s.defaults.GetDefaults(ctx, ids)
	if err != nil {
		return nil, nil, nil, s.persistence("load defaults", err)
	}
	overrideRows, err := s.overrides.GetOverrides(ctx, dates[0], dates[WorkWeekDays-1], ids)
	if err != nil {
		return nil, nil, nil, s.persistence("load overrides", err)
	}
	return roster, IndexDefaults(defaultRows), IndexOverrides(overrideRows), nil
}

// =============================================================================
// MUTATION SURFACE
// =============================================================================

// DefaultInput is one weekday entry of a set-defaults call.
type DefaultInput struct {
	Weekday  Weekday
	Location Location
}

// SetDefaults upserts weekday entries for one employee, keyed on
// (employee, weekday). Entries for omitted weekdays are left untouched;
// callers configuring a pattern are expected to pass the full 5-entry set.
func (s *Service) SetDefaults(ctx context.Context, actor Actor, employeeID EmployeeID, entries []DefaultInput) error {
	if !actor.Authenticated() {
		return ErrNotAuthenticated
	}
	if employeeID == "" {
		return ErrInvalidEmployee
	}
	if len(entries) == 0 {
		return ErrNoEntries
	}
	rows := make([]DefaultEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Weekday.Valid() {
			return ErrInvalidWeekday
		}
		if !e.Location.Valid() {
			return ErrInvalidLocation
		}
		rows = append(rows, DefaultEntry{
			EmployeeID: employeeID,
			Weekday:    e.Weekday,
			Location:   e.Location,
		})
	}

	if err := s.defaults.UpsertDefaults(ctx, rows); err != nil {
		return s.persistence("upsert defaults", err)
	}
	s.logger.Info("rota defaults set",
		zap.String("employee_id", string(employeeID)),
		zap.Int("entries", len(rows)),
		zap.String("actor", actor.ID))
	return nil
}

// SetOverride upserts a date override keyed on (employee, date), replacing
// any prior override for that exact date. The acting user is recorded.
func (s *Service) SetOverride(ctx context.Context, actor Actor, employeeID EmployeeID, date Date, location Location, notes string) error {
	if !actor.Authenticated() {
		return ErrNotAuthenticated
	}
	if employeeID == "" {
		return ErrInvalidEmployee
	}
	if !location.Valid() {
		return ErrInvalidLocation
	}

	row := Override{
		EmployeeID: employeeID,
		Date:       date,
		Location:   location,
		Notes:      notes,
		CreatedBy:  actor.ID,
	}
	if err := s.overrides.UpsertOverride(ctx, row); err != nil {
		return s.persistence("upsert override", err)
	}
	s.logger.Info("rota override set",
		zap.String("employee_id", string(employeeID)),
		zap.String("date", date.String()),
		zap.String("location", string(location)),
		zap.String("actor", actor.ID))
	return nil
}

// RemoveOverride deletes the (employee, date) override, reverting
// resolution to the default-pattern tier. No-op when absent.
func (s *Service) RemoveOverride(ctx context.Context, actor Actor, employeeID EmployeeID, date Date) error {
	if !actor.Authenticated() {
		return ErrNotAuthenticated
	}
	if employeeID == "" {
		return ErrInvalidEmployee
	}
	if err := s.overrides.DeleteOverride(ctx, employeeID, date); err != nil {
		return s.persistence("delete override", err)
	}
	s.logger.Info("rota override removed",
		zap.String("employee_id", string(employeeID)),
		zap.String("date", date.String()),
		zap.String("actor", actor.ID))
	return nil
}

// persistence logs the underlying store failure with detail and returns
// the opaque error surfaced to callers.
func (s *Service) persistence(op string, err error) error {
	s.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return &PersistenceError{Op: op, Err: err}
}

func employeeIDs(roster []Employee) []EmployeeID {
	ids := make([]EmployeeID, len(roster))
	for i, e := range roster {
		ids[i] = e.ID
	}
	return ids
}
