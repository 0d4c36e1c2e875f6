/*
summary.go - Week attendance aggregation

PURPOSE:
  Rolls a resolved week grid up into attendance figures: per-employee
  office/home day counts with an office-share ratio, and a per-day office
  headcount across the roster. Backs the reporting endpoint and the
  dashboard occupancy figures.

PRECISION:
  Ratios use decimal.Decimal so a 3-of-5 office week is exactly 0.6, not a
  binary float approximation. Ratios are round-tripped to clients as
  strings.
*/
package rota

import (
	"github.com/shopspring/decimal"
)

// EmployeeWeekSummary aggregates one employee's resolved week.
type EmployeeWeekSummary struct {
	EmployeeID   EmployeeID
	EmployeeName string
	OfficeDays   int
	HomeDays     int
	OverrideDays int
	// OfficeShare is OfficeDays over the 5-day work week.
	OfficeShare decimal.Decimal
}

// WeekSummary aggregates a full week grid.
type WeekSummary struct {
	WeekStart Date
	Entries   []EmployeeWeekSummary
	// OfficeHeadcount counts employees resolved to the office per date.
	OfficeHeadcount map[Date]int
	// OfficeShare is the roster-wide office ratio over the week:
	// total office person-days over total person-days. Zero for an empty roster.
	OfficeShare decimal.Decimal
}

// BuildWeekSummary resolves the week (BuildWeek) and aggregates it.
// Entry order follows the roster.
func BuildWeekSummary(weekStart Date, roster []Employee, defaults DefaultIndex, overrides OverrideIndex) (WeekSummary, error) {
	grid, err := BuildWeek(weekStart, roster, defaults, overrides)
	if err != nil {
		return WeekSummary{}, err
	}
	dates, _ := WeekDates(weekStart)

	summary := WeekSummary{
		WeekStart:       weekStart,
		Entries:         make([]EmployeeWeekSummary, 0, len(grid)),
		OfficeHeadcount: make(map[Date]int, WorkWeekDays),
		OfficeShare:     decimal.Zero,
	}
	for _, date := range dates {
		summary.OfficeHeadcount[date] = 0
	}

	weekDays := decimal.NewFromInt(WorkWeekDays)
	totalOffice := 0
	for _, entry := range grid {
		es := EmployeeWeekSummary{
			EmployeeID:   entry.EmployeeID,
			EmployeeName: entry.EmployeeName,
		}
		for _, date := range dates {
			day := entry.Days[date]
			if day.IsOverride {
				es.OverrideDays++
			}
			if day.Location == LocationOffice {
				es.OfficeDays++
				summary.OfficeHeadcount[date]++
			} else {
				es.HomeDays++
			}
		}
		es.OfficeShare = decimal.NewFromInt(int64(es.OfficeDays)).Div(weekDays)
		totalOffice += es.OfficeDays
		summary.Entries = append(summary.Entries, es)
	}

	if len(grid) > 0 {
		totalDays := weekDays.Mul(decimal.NewFromInt(int64(len(grid))))
		summary.OfficeShare = decimal.NewFromInt(int64(totalOffice)).Div(totalDays)
	}
	return summary, nil
}
