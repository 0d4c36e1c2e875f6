/*
week.go - 5-day week grid builder

PURPOSE:
  Builds the Sun..Thu rota grid for a given week start: one row per roster
  member, one resolved EffectiveDay per date. The grid is complete by
  construction - every entry has exactly 5 days even when the employee has
  no rota data at all (fail-open to office, resolver.go).

GUARANTEES:
  - len(entries) == len(roster)
  - every entry's Days map holds exactly the 5 dates weekStart..weekStart+4
  - deterministic: identical inputs produce identical output, no clock reads

SEE ALSO:
  - service.go: Fetches roster + rows and calls BuildWeek once per request
*/
package rota

// BuildWeek resolves the full week grid. The roster is expected pre-sorted
// by display name (the directory's contract); entry order follows it.
// Returns ErrNotSunday when weekStart is not a Sunday.
func BuildWeek(weekStart Date, roster []Employee, defaults DefaultIndex, overrides OverrideIndex) ([]WeekViewEntry, error) {
	dates, err := WeekDates(weekStart)
	if err != nil {
		return nil, err
	}

	entries := make([]WeekViewEntry, 0, len(roster))
	for _, emp := range roster {
		days := make(map[Date]EffectiveDay, WorkWeekDays)
		for _, date := range dates {
			days[date] = ResolveFor(emp.ID, date, defaults, overrides)
		}
		entries = append(entries, WeekViewEntry{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.Name,
			DepartmentName: emp.DepartmentName,
			AvatarURL:      emp.AvatarURL,
			Days:           days,
		})
	}
	return entries, nil
}
