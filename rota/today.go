/*
today.go - "Who is in today" snapshot builder

PURPOSE:
  Resolves the whole roster for a single date and partitions it into
  office/home groups for the dashboard widget. The date is an explicit
  parameter: the caller derives "today" once per request in the fixed
  organization timezone (DateIn, time.go), so the builder itself stays
  deterministic and testable with fixed clocks.

NON-WORK DAYS:
  Friday and Saturday produce Workday=false with empty groups. Callers
  render "no work day today" rather than an empty office.

GUARANTEES:
  - partition is exhaustive and disjoint: every roster member lands in
    exactly one group on a work day
  - group order follows roster order (sorted by name)
*/
package rota

// BuildToday resolves one day for the whole roster and groups the result
// by effective location.
func BuildToday(today Date, roster []Employee, defaults DefaultIndex, overrides OverrideIndex) TodaySnapshot {
	snapshot := TodaySnapshot{
		Date:   today,
		Office: []PresenceEntry{},
		Home:   []PresenceEntry{},
	}
	if !today.IsWorkday() {
		return snapshot
	}
	snapshot.Workday = true

	for _, emp := range roster {
		day := ResolveFor(emp.ID, today, defaults, overrides)
		entry := PresenceEntry{
			EmployeeID:     emp.ID,
			Name:           emp.Name,
			DepartmentName: emp.DepartmentName,
			AvatarURL:      emp.AvatarURL,
			Location:       day.Location,
		}
		if day.Location == LocationOffice {
			snapshot.Office = append(snapshot.Office, entry)
		} else {
			snapshot.Home = append(snapshot.Home, entry)
		}
	}
	return snapshot
}
