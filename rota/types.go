/*
Package rota provides the office rota resolution engine.

PURPOSE:
  This package contains the types and algorithms that compute, for any
  employee and any calendar date, the effective work location (office or
  home). Per-employee weekly default patterns are layered with date-specific
  overrides, and the result is aggregated into week views and "who is in
  today" snapshots.

KEY CONCEPTS IN THIS FILE (types.go):
  - Location: The two-valued work-location enum (office|home)
  - Weekday: Work-week day index, 0=Sunday .. 4=Thursday
  - DefaultEntry: One employee's preferred location for one weekday
  - Override: A date-specific location that supersedes the default
  - EffectiveDay: The resolved location for one (employee, date) pair

DESIGN PRINCIPLES:
  1. Resolution is total: every (employee, date) pair resolves to a
     location; missing data falls open to the office.
  2. Resolution is pure: resolvers compute over already-fetched rows and
     never touch storage or the clock.
  3. Derived, never stored: EffectiveDay is recomputed on every read so a
     view is always consistent with the latest write.

USAGE:
  defaults := rota.IndexDefaults(defaultRows)
  overrides := rota.IndexOverrides(overrideRows)
  day := rota.Resolve(date, defaults[empID], overrides[empID])

SEE ALSO:
  - resolver.go: Precedence algorithm (override > default > office)
  - week.go:     5-day week grid builder
  - today.go:    Office/home snapshot for a single day
  - service.go:  Mutation surface and read orchestration
*/
package rota

// =============================================================================
// LOCATION - Two-valued work-location enum
// =============================================================================

// Location is where an employee works on a given day. There is no third
// "unspecified" state: absence of data always resolves to LocationOffice.
type Location string

const (
	LocationOffice Location = "office"
	LocationHome   Location = "home"
)

// Valid reports whether l is one of the two known locations.
func (l Location) Valid() bool {
	return l == LocationOffice || l == LocationHome
}

// =============================================================================
// WEEKDAY - 5-day work week (Sunday through Thursday)
// =============================================================================

// Weekday indexes a day of the 5-day work week: 0=Sunday .. 4=Thursday.
// Friday and Saturday are not representable; they are never work days.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
)

// Valid reports whether w is within the Sunday..Thursday work week.
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Thursday
}

func (w Weekday) String() string {
	names := [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}
	if !w.Valid() {
		return "invalid"
	}
	return names[w]
}

// =============================================================================
// IDENTIFIERS AND DIRECTORY ENTITIES
// =============================================================================

type EmployeeID string

// Employee is a roster entry from the employee directory. The engine only
// reads these; the directory itself is owned by the surrounding system.
type Employee struct {
	ID             EmployeeID
	Name           string
	Role           string
	DepartmentID   string
	DepartmentName string
	AvatarURL      string
}

// Department groups employees for roster filtering.
type Department struct {
	ID   string
	Name string
}

// =============================================================================
// ROTA ROWS - Persisted default patterns and overrides
// =============================================================================

// DefaultEntry is one row of an employee's weekly pattern: at most one per
// (employee, weekday), enforced by upsert semantics keyed on that pair.
type DefaultEntry struct {
	EmployeeID EmployeeID
	Weekday    Weekday
	Location   Location
}

// Override pins an employee's location for one concrete date. At most one
// per (employee, date). Notes are free text shown in the week grid;
// CreatedBy records who set it.
type Override struct {
	ID         string
	EmployeeID EmployeeID
	Date       Date
	Location   Location
	Notes      string
	CreatedBy  string
}

// =============================================================================
// DERIVED RESULTS - Never persisted, recomputed per read
// =============================================================================

// EffectiveDay is the resolved location for one (employee, date) pair.
type EffectiveDay struct {
	Location   Location `json:"location"`
	IsOverride bool     `json:"is_override"`
	Notes      string   `json:"notes,omitempty"`
}

// WeekViewEntry is one row of the week grid: one employee, exactly five
// resolved days keyed by date.
type WeekViewEntry struct {
	EmployeeID     EmployeeID
	EmployeeName   string
	DepartmentName string
	AvatarURL      string
	Days           map[Date]EffectiveDay
}

// PresenceEntry is one employee's resolved location in a today snapshot.
type PresenceEntry struct {
	EmployeeID     EmployeeID
	Name           string
	DepartmentName string
	AvatarURL      string
	Location       Location
}

// TodaySnapshot partitions the roster into office/home groups for a single
// day. Workday is false on Friday/Saturday, in which case both groups are
// empty and callers should render "no work day today".
type TodaySnapshot struct {
	Date    Date
	Workday bool
	Office  []PresenceEntry
	Home    []PresenceEntry
}

// =============================================================================
// INDEXES - Two-level lookup maps built once per request
// =============================================================================
// Rows come back from the stores as flat slices; resolution wants O(1)
// lookups. Indexing once keeps a week view at O(employees+days) instead of
// one store round trip per grid cell.

// WeekdayMap is one employee's default pattern: weekday -> location.
type WeekdayMap map[Weekday]Location

// DateMap is one employee's overrides keyed by date.
type DateMap map[Date]Override

// DefaultIndex maps employee -> weekday -> location.
type DefaultIndex map[EmployeeID]WeekdayMap

// OverrideIndex maps employee -> date -> override.
type OverrideIndex map[EmployeeID]DateMap

// IndexDefaults builds a DefaultIndex from flat store rows. Later rows for
// the same (employee, weekday) win, matching store upsert semantics.
func IndexDefaults(rows []DefaultEntry) DefaultIndex {
	idx := make(DefaultIndex)
	for _, r := range rows {
		m, ok := idx[r.EmployeeID]
		if !ok {
			m = make(WeekdayMap)
			idx[r.EmployeeID] = m
		}
		m[r.Weekday] = r.Location
	}
	return idx
}

// IndexOverrides builds an OverrideIndex from flat store rows. Later rows
// for the same (employee, date) win.
func IndexOverrides(rows []Override) OverrideIndex {
	idx := make(OverrideIndex)
	for _, r := range rows {
		m, ok := idx[r.EmployeeID]
		if !ok {
			m = make(DateMap)
			idx[r.EmployeeID] = m
		}
		m[r.Date] = r
	}
	return idx
}
