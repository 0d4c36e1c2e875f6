package rota_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/rota-engine/rota"
)

func TestBuildWeekSummary_ExactRatios(t *testing.T) {
	// GIVEN: Employee with 3 office days (Sun/Tue/Wed default office,
	//        Mon/Thu home), plus one override day
	// THEN: OfficeShare is exactly 3/5 = 0.6

	weekStart := mustDate(t, "2024-01-07")
	emps := []rota.Employee{{ID: "emp-x", Name: "X"}}
	defaults := rota.IndexDefaults([]rota.DefaultEntry{
		defaultsRow("emp-x", rota.Sunday, rota.LocationOffice),
		defaultsRow("emp-x", rota.Monday, rota.LocationHome),
		defaultsRow("emp-x", rota.Tuesday, rota.LocationOffice),
		defaultsRow("emp-x", rota.Wednesday, rota.LocationOffice),
		defaultsRow("emp-x", rota.Thursday, rota.LocationHome),
	})

	summary, err := rota.BuildWeekSummary(weekStart, emps, defaults, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(summary.Entries))
	}

	es := summary.Entries[0]
	if es.OfficeDays != 3 || es.HomeDays != 2 {
		t.Errorf("expected 3 office / 2 home, got %d/%d", es.OfficeDays, es.HomeDays)
	}
	if !es.OfficeShare.Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("expected exact 0.6 office share, got %s", es.OfficeShare)
	}
	if !summary.OfficeShare.Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("expected roster share 0.6, got %s", summary.OfficeShare)
	}
}

func TestBuildWeekSummary_HeadcountMatchesPartition(t *testing.T) {
	// Two employees: one home on Monday by override, otherwise everyone
	// fail-open office. Monday headcount drops by one.

	weekStart := mustDate(t, "2024-01-07")
	emps := roster("Alice", "Bob")
	overrides := rota.IndexOverrides([]rota.Override{
		overrideRow("emp-Alice", "2024-01-08", rota.LocationHome, ""),
	})

	summary, err := rota.BuildWeekSummary(weekStart, emps, nil, overrides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	monday := mustDate(t, "2024-01-08")
	for date, count := range summary.OfficeHeadcount {
		want := 2
		if date.Equal(monday) {
			want = 1
		}
		if count != want {
			t.Errorf("%s: expected headcount %d, got %d", date, want, count)
		}
	}

	if summary.Entries[0].OverrideDays != 1 {
		t.Errorf("expected Alice to have 1 override day, got %d", summary.Entries[0].OverrideDays)
	}
}

func TestBuildWeekSummary_EmptyRoster(t *testing.T) {
	summary, err := rota.BuildWeekSummary(mustDate(t, "2024-01-07"), nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(summary.Entries))
	}
	if !summary.OfficeShare.IsZero() {
		t.Errorf("expected zero share for empty roster, got %s", summary.OfficeShare)
	}
}

func TestBuildWeekSummary_RejectsNonSunday(t *testing.T) {
	if _, err := rota.BuildWeekSummary(mustDate(t, "2024-01-08"), nil, nil, nil); err == nil {
		t.Fatal("expected error for non-Sunday week start")
	}
}
