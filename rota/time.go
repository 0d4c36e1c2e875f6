package rota

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date with no time-of-day component
// =============================================================================
// Rota resolution works on plain dates: an override for 2024-01-08 applies
// to the whole day regardless of clock time. Date normalizes to midnight
// UTC internally so values are comparable and usable as map keys.

// DefaultTimezone is the organization's fixed timezone. "Today" and weekday
// boundaries are always derived here, never in the server's local zone: a
// server running in UTC must not compute "Sunday" incorrectly for a UTC+2/+3
// organization.
const DefaultTimezone = "Asia/Jerusalem"

const dateLayout = "2006-01-02"

type Date struct {
	t time.Time
}

// NewDate constructs a Date from calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// DateIn extracts the calendar date of instant t as observed in loc.
// This is the only bridge between wall-clock time and rota dates.
func DateIn(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return NewDate(y, m, d)
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date {
	t := d.t.AddDate(0, 0, n)
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Properties
func (d Date) Year() int            { return d.t.Year() }
func (d Date) Month() time.Month    { return d.t.Month() }
func (d Date) Day() int             { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// WorkWeekday maps the date to the 0..4 Sunday..Thursday index. The second
// return is false for Friday and Saturday, which have no work-week index.
func (d Date) WorkWeekday() (Weekday, bool) {
	wd := d.t.Weekday()
	if wd == time.Friday || wd == time.Saturday {
		return 0, false
	}
	return Weekday(int(wd)), true
}

// IsWorkday reports whether the date falls on the Sunday..Thursday work week.
func (d Date) IsWorkday() bool {
	_, ok := d.WorkWeekday()
	return ok
}

func (d Date) String() string { return d.t.Format(dateLayout) }

// MarshalText/UnmarshalText let Date serve as a JSON object key and field.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// WEEK NAVIGATION
// =============================================================================

// WorkWeekDays is the number of days in a rota week grid.
const WorkWeekDays = 5

// WeekStartOf returns the Sunday on or before d: the canonical week-start
// identifier for the week containing d.
func WeekStartOf(d Date) Date {
	return d.AddDays(-int(d.t.Weekday()))
}

// NextWeekStart and PrevWeekStart step week identifiers for navigation.
func NextWeekStart(weekStart Date) Date { return weekStart.AddDays(7) }
func PrevWeekStart(weekStart Date) Date { return weekStart.AddDays(-7) }

// WeekDates expands a Sunday week start into the 5 work-week dates
// (Sun..Thu). Returns ErrNotSunday for any other weekday.
func WeekDates(weekStart Date) ([WorkWeekDays]Date, error) {
	var dates [WorkWeekDays]Date
	if weekStart.Weekday() != time.Sunday {
		return dates, fmt.Errorf("week start %s: %w", weekStart, ErrNotSunday)
	}
	for i := 0; i < WorkWeekDays; i++ {
		dates[i] = weekStart.AddDays(i)
	}
	return dates, nil
}

// LoadTimezone resolves a timezone name, defaulting to the organization
// timezone when empty.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
