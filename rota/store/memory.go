// Package store provides in-memory rota store implementations (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/warp/rota-engine/rota"
)

// =============================================================================
// MEMORY STORE - Keyed-upsert maps guarded by a RWMutex
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	employees   map[rota.EmployeeID]rota.Employee
	departments map[string]rota.Department
	defaults    map[defaultKey]rota.DefaultEntry
	overrides   map[overrideKey]rota.Override
}

type defaultKey struct {
	EmployeeID rota.EmployeeID
	Weekday    rota.Weekday
}

type overrideKey struct {
	EmployeeID rota.EmployeeID
	Date       rota.Date
}

var _ rota.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		employees:   make(map[rota.EmployeeID]rota.Employee),
		departments: make(map[string]rota.Department),
		defaults:    make(map[defaultKey]rota.DefaultEntry),
		overrides:   make(map[overrideKey]rota.Override),
	}
}

// =============================================================================
// DIRECTORY
// =============================================================================

func (m *Memory) ListEmployees(_ context.Context, departmentID string) ([]rota.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []rota.Employee
	for _, e := range m.employees {
		if departmentID != "" && e.DepartmentID != departmentID {
			continue
		}
		if d, ok := m.departments[e.DepartmentID]; ok {
			e.DepartmentName = d.Name
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) ListDepartments(_ context.Context) ([]rota.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rota.Department, 0, len(m.departments))
	for _, d := range m.departments {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *Memory) SaveEmployee(_ context.Context, e rota.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = rota.EmployeeID(uuid.NewString())
	}
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) SaveDepartment(_ context.Context, d rota.Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	m.departments[d.ID] = d
	return nil
}

// =============================================================================
// DEFAULT PATTERN STORE
// =============================================================================

func (m *Memory) GetDefaults(_ context.Context, employeeIDs []rota.EmployeeID) ([]rota.DefaultEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filter := idSet(employeeIDs)
	var result []rota.DefaultEntry
	for _, row := range m.defaults {
		if filter != nil && !filter[row.EmployeeID] {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].EmployeeID != result[j].EmployeeID {
			return result[i].EmployeeID < result[j].EmployeeID
		}
		return result[i].Weekday < result[j].Weekday
	})
	return result, nil
}

func (m *Memory) UpsertDefaults(_ context.Context, rows []rota.DefaultEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		m.defaults[defaultKey{row.EmployeeID, row.Weekday}] = row
	}
	return nil
}

// =============================================================================
// OVERRIDE STORE
// =============================================================================

func (m *Memory) GetOverrides(_ context.Context, from, to rota.Date, employeeIDs []rota.EmployeeID) ([]rota.Override, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filter := idSet(employeeIDs)
	var result []rota.Override
	for _, row := range m.overrides {
		if row.Date.Before(from) || row.Date.After(to) {
			continue
		}
		if filter != nil && !filter[row.EmployeeID] {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}

func (m *Memory) UpsertOverride(_ context.Context, row rota.Override) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := overrideKey{row.EmployeeID, row.Date}
	if existing, ok := m.overrides[k]; ok {
		row.ID = existing.ID
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	m.overrides[k] = row
	return nil
}

func (m *Memory) DeleteOverride(_ context.Context, employeeID rota.EmployeeID, date rota.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, overrideKey{employeeID, date})
	return nil
}

func idSet(ids []rota.EmployeeID) map[rota.EmployeeID]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[rota.EmployeeID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
