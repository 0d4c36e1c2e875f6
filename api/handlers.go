/*
handlers.go - HTTP API handlers for the office rota

PURPOSE:
  Exposes the rota engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the rota service.

ENDPOINTS:
  Directory:
    GET    /api/employees                 List roster (optional ?department=)
    POST   /api/employees                 Create/update employee
    GET    /api/departments               List departments
    POST   /api/departments               Create department

  Rota:
    GET    /api/rota/week                 Week grid (?start=YYYY-MM-DD&department=)
    GET    /api/rota/week/summary         Attendance aggregates for a week
    GET    /api/rota/today                Office/home snapshot for today
    PUT    /api/rota/defaults/{employeeID}           Set weekly defaults
    PUT    /api/rota/overrides/{employeeID}/{date}   Set a date override
    DELETE /api/rota/overrides/{employeeID}/{date}   Remove a date override

ACTING USER:
  Mutations read the acting user from the X-Actor-ID header, set by the
  fronting auth layer. The engine only checks that an identity is present;
  role gating happens upstream. Missing header -> 401.

ERROR HANDLING:
  - 400: Validation errors, invalid input
  - 401: Missing acting user on a mutation
  - 500: Persistence failures, reported opaquely ("operation failed"),
         detail logged server-side

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/warp/rota-engine/rota"
)

// actorHeader carries the authenticated user's identity, resolved by the
// fronting auth layer.
const actorHeader = "X-Actor-ID"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	svc      *rota.Service
	dir      rota.Directory
	logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler around the rota service and directory.
func NewHandler(svc *rota.Service, dir rota.Directory, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		svc:      svc,
		dir:      dir,
		logger:   logger,
		validate: validator.New(),
	}
}

// =============================================================================
// DIRECTORY HANDLERS
// =============================================================================

// ListEmployees returns the roster, optionally filtered by department.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.dir.ListEmployees(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates or updates an employee record.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	emp := rota.Employee{
		ID:           rota.EmployeeID(req.ID),
		Name:         req.Name,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		AvatarURL:    req.AvatarURL,
	}
	if err := h.dir.SaveEmployee(r.Context(), emp); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// ListDepartments returns all departments.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.dir.ListDepartments(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list departments", err)
		return
	}
	dtos := make([]DepartmentDTO, len(departments))
	for i, d := range departments {
		dtos[i] = DepartmentDTO{ID: d.ID, Name: d.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDepartment creates a department.
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req CreateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	dept := rota.Department{ID: req.ID, Name: req.Name}
	if err := h.dir.SaveDepartment(r.Context(), dept); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save department", err)
		return
	}
	writeJSON(w, http.StatusCreated, DepartmentDTO{ID: dept.ID, Name: dept.Name})
}

// =============================================================================
// ROTA READ HANDLERS
// =============================================================================

// GetWeek returns the resolved week grid. ?start must be a Sunday; when
// omitted, the current week (organization timezone) is used.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := h.weekStartParam(w, r)
	if !ok {
		return
	}
	entries, err := h.svc.WeekView(r.Context(), weekStart, r.URL.Query().Get("department"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekViewDTO(weekStart, entries))
}

// GetWeekSummary returns attendance aggregates for a week.
func (h *Handler) GetWeekSummary(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := h.weekStartParam(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.WeekSummary(r.Context(), weekStart, r.URL.Query().Get("department"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeekSummaryDTO(summary))
}

// GetToday returns the office/home snapshot for today in the organization
// timezone.
func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.TodaySnapshot(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTodayDTO(snapshot))
}

// =============================================================================
// ROTA MUTATION HANDLERS
// =============================================================================

// SetDefaults replaces an employee's weekly pattern entries.
func (h *Handler) SetDefaults(w http.ResponseWriter, r *http.Request) {
	employeeID := rota.EmployeeID(chi.URLParam(r, "employeeID"))
	var req SetDefaultsRequest
	if !h.decode(w, r, &req) {
		return
	}

	entries := make([]rota.DefaultInput, len(req.Defaults))
	for i, d := range req.Defaults {
		entries[i] = rota.DefaultInput{
			Weekday:  rota.Weekday(d.Weekday),
			Location: rota.Location(d.Location),
		}
	}
	if err := h.svc.SetDefaults(r.Context(), actorFrom(r), employeeID, entries); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SetOverride pins one employee's location for one date.
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := rota.EmployeeID(chi.URLParam(r, "employeeID"))
	date, err := rota.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req SetOverrideRequest
	if !h.decode(w, r, &req) {
		return
	}

	err = h.svc.SetOverride(r.Context(), actorFrom(r), employeeID, date, rota.Location(req.Location), req.Notes)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RemoveOverride reverts one date to the default pattern.
func (h *Handler) RemoveOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := rota.EmployeeID(chi.URLParam(r, "employeeID"))
	date, err := rota.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.svc.RemoveOverride(r.Context(), actorFrom(r), employeeID, date); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// =============================================================================
// HELPERS
// =============================================================================

func actorFrom(r *http.Request) rota.Actor {
	return rota.Actor{ID: r.Header.Get(actorHeader)}
}

// weekStartParam parses ?start, defaulting to the current week's Sunday in
// the organization timezone.
func (h *Handler) weekStartParam(w http.ResponseWriter, r *http.Request) (rota.Date, bool) {
	raw := r.URL.Query().Get("start")
	if raw == "" {
		return rota.WeekStartOf(h.svc.Today()), true
	}
	weekStart, err := rota.ParseDate(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return rota.Date{}, false
	}
	return weekStart, true
}

// decode parses and validates a JSON request body. Writes the error
// response itself and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	return true
}

// writeDomainError maps rota errors onto HTTP statuses. Persistence
// failures stay opaque to the client.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case rota.IsAuthError(err):
		h.writeError(w, http.StatusUnauthorized, "Not authenticated", nil)
	case rota.IsClientError(err):
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		h.writeError(w, http.StatusInternalServerError, "operation failed", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.logger.Error("request failed",
			zap.Int("status", status),
			zap.String("message", message),
			zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
