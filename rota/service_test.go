package rota_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rota-engine/rota"
	"github.com/warp/rota-engine/rota/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var manager = rota.Actor{ID: "mgr-1"}

// newTestService wires a Service over the in-memory store with a fixed
// clock: Tuesday 2024-01-09, 10:00 in the organization timezone.
func newTestService(t *testing.T) (*rota.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	tz, err := rota.LoadTimezone("")
	require.NoError(t, err)

	svc := rota.NewService(mem, tz, nil).WithClock(func() time.Time {
		return time.Date(2024, time.January, 9, 10, 0, 0, 0, tz)
	})
	return svc, mem
}

func seedEmployees(t *testing.T, mem *store.Memory, names ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, mem.SaveDepartment(ctx, rota.Department{ID: "dept-eng", Name: "Engineering"}))
	for _, n := range names {
		require.NoError(t, mem.SaveEmployee(ctx, rota.Employee{
			ID:           rota.EmployeeID("emp-" + n),
			Name:         n,
			DepartmentID: "dept-eng",
		}))
	}
}

func fullWeekPattern(loc rota.Location) []rota.DefaultInput {
	entries := make([]rota.DefaultInput, rota.WorkWeekDays)
	for i := range entries {
		entries[i] = rota.DefaultInput{Weekday: rota.Weekday(i), Location: loc}
	}
	return entries
}

// =============================================================================
// AUTHENTICATION AND VALIDATION
// =============================================================================

func TestService_MutationsRequireActor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	anon := rota.Actor{}
	date := mustDate(t, "2024-01-09")

	err := svc.SetDefaults(ctx, anon, "emp-1", fullWeekPattern(rota.LocationHome))
	assert.ErrorIs(t, err, rota.ErrNotAuthenticated)

	err = svc.SetOverride(ctx, anon, "emp-1", date, rota.LocationHome, "")
	assert.ErrorIs(t, err, rota.ErrNotAuthenticated)

	err = svc.RemoveOverride(ctx, anon, "emp-1", date)
	assert.ErrorIs(t, err, rota.ErrNotAuthenticated)
}

func TestService_SetDefaults_ValidatesBeforeStore(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	err := svc.SetDefaults(ctx, manager, "emp-1", []rota.DefaultInput{
		{Weekday: 5, Location: rota.LocationHome}, // Friday is not configurable
	})
	assert.ErrorIs(t, err, rota.ErrInvalidWeekday)

	err = svc.SetDefaults(ctx, manager, "emp-1", []rota.DefaultInput{
		{Weekday: rota.Monday, Location: "beach"},
	})
	assert.ErrorIs(t, err, rota.ErrInvalidLocation)

	err = svc.SetDefaults(ctx, manager, "emp-1", nil)
	assert.ErrorIs(t, err, rota.ErrNoEntries)

	err = svc.SetDefaults(ctx, manager, "", fullWeekPattern(rota.LocationHome))
	assert.ErrorIs(t, err, rota.ErrInvalidEmployee)

	// Nothing reached the store.
	rows, err := mem.GetDefaults(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestService_WeekView_RejectsNonSundayBeforeStore(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.WeekView(context.Background(), mustDate(t, "2024-01-10"), "")
	assert.ErrorIs(t, err, rota.ErrNotSunday)
}

// =============================================================================
// ROUND TRIPS
// =============================================================================

func TestService_OverrideRoundTrip(t *testing.T) {
	// setOverride -> resolve shows the override; removeOverride -> resolution
	// reverts to the default tier.

	svc, mem := newTestService(t)
	ctx := context.Background()
	seedEmployees(t, mem, "Alice")

	weekStart := mustDate(t, "2024-01-07")
	monday := mustDate(t, "2024-01-08")

	require.NoError(t, svc.SetDefaults(ctx, manager, "emp-Alice", fullWeekPattern(rota.LocationOffice)))
	require.NoError(t, svc.SetOverride(ctx, manager, "emp-Alice", monday, rota.LocationHome, "plumber visit"))

	entries, err := svc.WeekView(ctx, weekStart, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	day := entries[0].Days[monday]
	assert.Equal(t, rota.LocationHome, day.Location)
	assert.True(t, day.IsOverride)
	assert.Equal(t, "plumber visit", day.Notes)

	// Remove and re-read: back to the office default.
	require.NoError(t, svc.RemoveOverride(ctx, manager, "emp-Alice", monday))
	entries, err = svc.WeekView(ctx, weekStart, "")
	require.NoError(t, err)

	day = entries[0].Days[monday]
	assert.Equal(t, rota.LocationOffice, day.Location)
	assert.False(t, day.IsOverride)
	assert.Empty(t, day.Notes)

	// Removing again is a no-op, not an error.
	assert.NoError(t, svc.RemoveOverride(ctx, manager, "emp-Alice", monday))
}

func TestService_SetOverride_ReplacesPriorForSameDate(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	seedEmployees(t, mem, "Alice")
	monday := mustDate(t, "2024-01-08")

	require.NoError(t, svc.SetOverride(ctx, manager, "emp-Alice", monday, rota.LocationHome, "first"))
	require.NoError(t, svc.SetOverride(ctx, manager, "emp-Alice", monday, rota.LocationOffice, "second"))

	rows, err := mem.GetOverrides(ctx, monday, monday, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1, "upsert must leave one live row per (employee, date)")
	assert.Equal(t, rota.LocationOffice, rows[0].Location)
	assert.Equal(t, "second", rows[0].Notes)
	assert.Equal(t, manager.ID, rows[0].CreatedBy)
}

func TestService_SetDefaults_ReplacesOnlyNamedWeekdays(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	seedEmployees(t, mem, "Alice")

	require.NoError(t, svc.SetDefaults(ctx, manager, "emp-Alice", fullWeekPattern(rota.LocationHome)))
	// Reconfigure Monday only; the other four weekdays keep their value.
	require.NoError(t, svc.SetDefaults(ctx, manager, "emp-Alice", []rota.DefaultInput{
		{Weekday: rota.Monday, Location: rota.LocationOffice},
	}))

	rows, err := mem.GetDefaults(ctx, []rota.EmployeeID{"emp-Alice"})
	require.NoError(t, err)
	require.Len(t, rows, rota.WorkWeekDays)

	byWeekday := map[rota.Weekday]rota.Location{}
	for _, r := range rows {
		byWeekday[r.Weekday] = r.Location
	}
	assert.Equal(t, rota.LocationOffice, byWeekday[rota.Monday])
	assert.Equal(t, rota.LocationHome, byWeekday[rota.Sunday])
	assert.Equal(t, rota.LocationHome, byWeekday[rota.Thursday])
}

// =============================================================================
// TODAY SNAPSHOT
// =============================================================================

func TestService_TodaySnapshot_WorkdayPartition(t *testing.T) {
	// Fixed clock: Tuesday 2024-01-09. Alice home by default, Bob office
	// fail-open.

	svc, mem := newTestService(t)
	ctx := context.Background()
	seedEmployees(t, mem, "Alice", "Bob")

	require.NoError(t, svc.SetDefaults(ctx, manager, "emp-Alice", []rota.DefaultInput{
		{Weekday: rota.Tuesday, Location: rota.LocationHome},
	}))

	snap, err := svc.TodaySnapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Workday)
	assert.Equal(t, "2024-01-09", snap.Date.String())
	require.Len(t, snap.Home, 1)
	require.Len(t, snap.Office, 1)
	assert.Equal(t, "Alice", snap.Home[0].Name)
	assert.Equal(t, "Bob", snap.Office[0].Name)
}

func TestService_TodaySnapshot_FridayEmpty(t *testing.T) {
	svc, mem := newTestService(t)
	seedEmployees(t, mem, "Alice", "Bob")

	tz := svc.Timezone()
	svc.WithClock(func() time.Time {
		return time.Date(2024, time.January, 12, 10, 0, 0, 0, tz) // Friday
	})

	snap, err := svc.TodaySnapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Workday)
	assert.Empty(t, snap.Office)
	assert.Empty(t, snap.Home)
}

func TestService_TodaySnapshot_OrgTimezoneNotServerLocal(t *testing.T) {
	// GIVEN: An instant that is Thursday 23:00 UTC but already Friday in
	//        the organization timezone
	// THEN: The snapshot is the non-workday case

	svc, mem := newTestService(t)
	seedEmployees(t, mem, "Alice")

	svc.WithClock(func() time.Time {
		return time.Date(2024, time.January, 11, 23, 0, 0, 0, time.UTC)
	})

	snap, err := svc.TodaySnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-12", snap.Date.String())
	assert.False(t, snap.Workday)
}

// =============================================================================
// DEPARTMENT FILTER AND PERSISTENCE FAILURES
// =============================================================================

func TestService_WeekView_DepartmentFilter(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	seedEmployees(t, mem, "Alice")
	require.NoError(t, mem.SaveDepartment(ctx, rota.Department{ID: "dept-ops", Name: "Operations"}))
	require.NoError(t, mem.SaveEmployee(ctx, rota.Employee{ID: "emp-Zed", Name: "Zed", DepartmentID: "dept-ops"}))

	weekStart := mustDate(t, "2024-01-07")

	all, err := svc.WeekView(ctx, weekStart, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ops, err := svc.WeekView(ctx, weekStart, "dept-ops")
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "Zed", ops[0].EmployeeName)
	assert.Equal(t, "Operations", ops[0].DepartmentName)
}

// failingStore wraps the memory store and fails override writes.
type failingStore struct {
	*store.Memory
	err error
}

func (f *failingStore) UpsertOverride(context.Context, rota.Override) error { return f.err }

func TestService_PersistenceErrorIsOpaque(t *testing.T) {
	tz, err := rota.LoadTimezone("")
	require.NoError(t, err)

	boom := errors.New("disk full: /var/lib/rota.db")
	svc := rota.NewService(&failingStore{Memory: store.NewMemory(), err: boom}, tz, nil)

	err = svc.SetOverride(context.Background(), manager, "emp-1", mustDate(t, "2024-01-09"), rota.LocationHome, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, rota.ErrOperationFailed)
	assert.NotContains(t, err.Error(), "disk full", "underlying detail must not leak to callers")

	var pe *rota.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, pe.Cause(), boom)
}
