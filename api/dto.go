/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request bodies carry go-playground/validator struct tags, checked in the
  handlers before any domain call. The core runs its own domain validation
  on top; the tags just fail malformed payloads fast with a field-level
  message.
*/
package api

import (
	"github.com/warp/rota-engine/rota"
)

// =============================================================================
// DIRECTORY TYPES
// =============================================================================

// EmployeeDTO represents a roster entry in API responses.
type EmployeeDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role,omitempty"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
}

// CreateEmployeeRequest is the request to create or update an employee.
type CreateEmployeeRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
}

// DepartmentDTO represents a department.
type DepartmentDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateDepartmentRequest is the request to create a department.
type CreateDepartmentRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// =============================================================================
// ROTA READ TYPES
// =============================================================================

// EffectiveDayDTO is one resolved grid cell.
type EffectiveDayDTO struct {
	Location   string `json:"location"`
	IsOverride bool   `json:"is_override"`
	Notes      string `json:"notes,omitempty"`
}

// WeekViewEntryDTO is one employee row of the week grid, with days keyed
// by ISO date.
type WeekViewEntryDTO struct {
	EmployeeID     string                     `json:"employee_id"`
	EmployeeName   string                     `json:"employee_name"`
	DepartmentName string                     `json:"department_name,omitempty"`
	AvatarURL      string                     `json:"avatar_url,omitempty"`
	Days           map[string]EffectiveDayDTO `json:"days"`
}

// WeekViewDTO wraps the grid with its date labels and navigation anchors.
type WeekViewDTO struct {
	WeekStart string             `json:"week_start"`
	Dates     []string           `json:"dates"`
	PrevWeek  string             `json:"prev_week"`
	NextWeek  string             `json:"next_week"`
	Entries   []WeekViewEntryDTO `json:"entries"`
}

// PresenceDTO is one employee in the today snapshot.
type PresenceDTO struct {
	EmployeeID     string `json:"employee_id"`
	Name           string `json:"name"`
	DepartmentName string `json:"department_name,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
}

// TodayDTO is the "who is in today" snapshot. Workday false means Friday
// or Saturday; clients render "no work day today" instead of an empty office.
type TodayDTO struct {
	Date    string        `json:"date"`
	Workday bool          `json:"workday"`
	Office  []PresenceDTO `json:"office"`
	Home    []PresenceDTO `json:"home"`
}

// EmployeeWeekSummaryDTO is one employee's attendance aggregate. Office
// share is a decimal string (e.g. "0.6").
type EmployeeWeekSummaryDTO struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	OfficeDays   int    `json:"office_days"`
	HomeDays     int    `json:"home_days"`
	OverrideDays int    `json:"override_days"`
	OfficeShare  string `json:"office_share"`
}

// WeekSummaryDTO is the roster-wide attendance aggregate for one week.
type WeekSummaryDTO struct {
	WeekStart       string                   `json:"week_start"`
	OfficeShare     string                   `json:"office_share"`
	OfficeHeadcount map[string]int           `json:"office_headcount"`
	Entries         []EmployeeWeekSummaryDTO `json:"entries"`
}

// =============================================================================
// MUTATION TYPES
// =============================================================================

// DefaultEntryRequest is one weekday entry of a set-defaults call.
type DefaultEntryRequest struct {
	Weekday  int    `json:"weekday" validate:"min=0,max=4"`
	Location string `json:"location" validate:"required,oneof=office home"`
}

// SetDefaultsRequest sets an employee's weekly pattern. Callers are
// expected to send the full 5-entry set; omitted weekdays keep their
// previous value.
type SetDefaultsRequest struct {
	Defaults []DefaultEntryRequest `json:"defaults" validate:"required,min=1,max=5,dive"`
}

// SetOverrideRequest pins one date to a location.
type SetOverrideRequest struct {
	Location string `json:"location" validate:"required,oneof=office home"`
	Notes    string `json:"notes" validate:"max=500"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e rota.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:             string(e.ID),
		Name:           e.Name,
		Role:           e.Role,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		AvatarURL:      e.AvatarURL,
	}
}

func toWeekViewDTO(weekStart rota.Date, entries []rota.WeekViewEntry) WeekViewDTO {
	dates, _ := rota.WeekDates(weekStart)
	dateStrs := make([]string, len(dates))
	for i, d := range dates {
		dateStrs[i] = d.String()
	}

	dtos := make([]WeekViewEntryDTO, len(entries))
	for i, entry := range entries {
		days := make(map[string]EffectiveDayDTO, len(entry.Days))
		for date, day := range entry.Days {
			days[date.String()] = EffectiveDayDTO{
				Location:   string(day.Location),
				IsOverride: day.IsOverride,
				Notes:      day.Notes,
			}
		}
		dtos[i] = WeekViewEntryDTO{
			EmployeeID:     string(entry.EmployeeID),
			EmployeeName:   entry.EmployeeName,
			DepartmentName: entry.DepartmentName,
			AvatarURL:      entry.AvatarURL,
			Days:           days,
		}
	}

	return WeekViewDTO{
		WeekStart: weekStart.String(),
		Dates:     dateStrs,
		PrevWeek:  rota.PrevWeekStart(weekStart).String(),
		NextWeek:  rota.NextWeekStart(weekStart).String(),
		Entries:   dtos,
	}
}

func toTodayDTO(s rota.TodaySnapshot) TodayDTO {
	return TodayDTO{
		Date:    s.Date.String(),
		Workday: s.Workday,
		Office:  toPresenceDTOs(s.Office),
		Home:    toPresenceDTOs(s.Home),
	}
}

func toPresenceDTOs(entries []rota.PresenceEntry) []PresenceDTO {
	dtos := make([]PresenceDTO, len(entries))
	for i, e := range entries {
		dtos[i] = PresenceDTO{
			EmployeeID:     string(e.EmployeeID),
			Name:           e.Name,
			DepartmentName: e.DepartmentName,
			AvatarURL:      e.AvatarURL,
		}
	}
	return dtos
}

func toWeekSummaryDTO(s rota.WeekSummary) WeekSummaryDTO {
	headcount := make(map[string]int, len(s.OfficeHeadcount))
	for date, n := range s.OfficeHeadcount {
		headcount[date.String()] = n
	}
	entries := make([]EmployeeWeekSummaryDTO, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = EmployeeWeekSummaryDTO{
			EmployeeID:   string(e.EmployeeID),
			EmployeeName: e.EmployeeName,
			OfficeDays:   e.OfficeDays,
			HomeDays:     e.HomeDays,
			OverrideDays: e.OverrideDays,
			OfficeShare:  e.OfficeShare.String(),
		}
	}
	return WeekSummaryDTO{
		WeekStart:       s.WeekStart.String(),
		OfficeShare:     s.OfficeShare.String(),
		OfficeHeadcount: headcount,
		Entries:         entries,
	}
}
