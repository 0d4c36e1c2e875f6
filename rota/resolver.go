/*
resolver.go - Effective-location resolution for one (employee, date) pair

PURPOSE:
  The single precedence rule the rest of the system leans on:

    1. Override for (employee, date)            -> that location, IsOverride
    2. Default for (employee, weekdayOf(date))  -> that location
    3. Neither                                  -> office (fail-open)

  Resolution is a total, pure function: no error conditions, no storage
  access, no clock reads. Callers fetch rows, index them (types.go), and
  resolve over the snapshot.

FAIL-OPEN POLICY:
  An employee with no configured pattern is assumed to default to the
  office. This directly affects the today-snapshot office headcount for
  unconfigured employees.

SEE ALSO:
  - week.go:  Applies Resolve across a 5-day grid
  - today.go: Applies Resolve for a single day
*/
package rota

// Resolve computes the effective location for one date given one employee's
// default pattern and overrides. Both maps may be nil.
func Resolve(date Date, defaults WeekdayMap, overrides DateMap) EffectiveDay {
	if o, ok := overrides[date]; ok {
		return EffectiveDay{Location: o.Location, IsOverride: true, Notes: o.Notes}
	}
	if wd, ok := date.WorkWeekday(); ok {
		if loc, ok := defaults[wd]; ok {
			return EffectiveDay{Location: loc, IsOverride: false}
		}
	}
	return EffectiveDay{Location: LocationOffice, IsOverride: false}
}

// ResolveFor is Resolve with index-level inputs: it picks out the
// employee's maps and falls through identically when the employee has no
// rows at all.
func ResolveFor(employeeID EmployeeID, date Date, defaults DefaultIndex, overrides OverrideIndex) EffectiveDay {
	return Resolve(date, defaults[employeeID], overrides[employeeID])
}
