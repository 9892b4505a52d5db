/*
handlers.go - HTTP API handlers for the leave management system

PURPOSE:
  Exposes the leave core via REST. Handles HTTP request/response and JSON
  serialization, delegating every decision to the leave package.

ENDPOINTS:
  Employees:
    GET    /api/employees               List all employees
    POST   /api/employees               Register employee (provisions balances)

  Reference data:
    GET    /api/leave-types             List leave types

  Balances:
    GET    /api/leave-balances?employeeId=N   Balance rows for an employee

  Requests:
    GET    /api/leave-requests[?employeeId=N] List requests
    POST   /api/leave-requests                Submit request (PENDING)
    PATCH  /api/leave-requests/{id}           Approve / reject / no-op

  Scenarios (demo data, see scenarios.go):
    GET    /api/scenarios
    POST   /api/scenarios/load

ERROR HANDLING:
  Domain errors map to HTTP statuses by category:
  - 400: validation (missing/malformed fields, bad dates, inverted ranges)
  - 404: not found (employee, leave type, request, balance row)
  - 409: business rule (insufficient balance, overlap, illegal transition)
  - 500: anything else
  The response body is always the {"success": false, "error": "..."} envelope.

SEE ALSO:
  - dto.go:    wire types
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/lumahr/leave-engine/leave"
)

// =============================================================================
// HANDLER
// =============================================================================

// Handler holds the handler dependencies. The service pointer is swapped
// when a demo scenario is loaded, so access goes through Service().
type Handler struct {
	mu     sync.RWMutex
	svc    *leave.Service
	fresh  func() *leave.Service // builds an empty service for scenario loads; nil disables
	logger *slog.Logger
}

type HandlerOption func(*Handler)

// WithScenarioReset enables the scenario endpoints. fresh must return a new
// empty service wired to the same persistence as the original.
func WithScenarioReset(fresh func() *leave.Service) HandlerOption {
	return func(h *Handler) { h.fresh = fresh }
}

func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

func NewHandler(svc *leave.Service, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Service returns the current service instance.
func (h *Handler) Service() *leave.Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

func (h *Handler) swapService(svc *leave.Service) {
	h.mu.Lock()
	h.svc = svc
	h.mu.Unlock()
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees := h.Service().Employees()
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeData(w, http.StatusOK, dtos)
}

// CreateEmployee registers an employee and provisions balance rows.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var body CreateEmployeeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	emp, err := h.Service().CreateEmployee(r.Context(), leave.CreateEmployeeParams{
		Name:        body.Name,
		Email:       body.Email,
		Department:  body.Department,
		JoiningDate: body.JoiningDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusCreated, toEmployeeDTO(emp))
}

// =============================================================================
// LEAVE TYPE HANDLERS
// =============================================================================

// ListLeaveTypes returns the reference set of leave types.
func (h *Handler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types := h.Service().LeaveTypes()
	dtos := make([]LeaveTypeDTO, len(types))
	for i, lt := range types {
		dtos[i] = toLeaveTypeDTO(lt)
	}
	writeData(w, http.StatusOK, dtos)
}

// =============================================================================
// BALANCE HANDLERS
// =============================================================================

// ListLeaveBalances returns balance rows for one employee.
func (h *Handler) ListLeaveBalances(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("employeeId")
	if raw == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Missing employeeId parameter")
		return
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid employeeId parameter")
		return
	}

	balances := h.Service().BalancesByEmployee(leave.EmployeeID(id))
	dtos := make([]LeaveBalanceDTO, len(balances))
	for i, b := range balances {
		dtos[i] = toLeaveBalanceDTO(b)
	}
	writeData(w, http.StatusOK, dtos)
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ListLeaveRequests returns all requests, or one employee's when the
// employeeId query parameter is present.
func (h *Handler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	var requests []leave.LeaveRequest
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Invalid employeeId parameter")
			return
		}
		requests = h.Service().RequestsByEmployee(leave.EmployeeID(id))
	} else {
		requests = h.Service().Requests()
	}

	dtos := make([]LeaveRequestDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toLeaveRequestDTO(req)
	}
	writeData(w, http.StatusOK, dtos)
}

// CreateLeaveRequest submits a new leave request.
func (h *Handler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var body CreateLeaveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := h.Service().CreateRequest(r.Context(), leave.CreateRequestParams{
		EmployeeID:  leave.EmployeeID(body.EmployeeID),
		LeaveTypeID: leave.LeaveTypeID(body.LeaveTypeID),
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Reason:      body.Reason,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusCreated, toLeaveRequestDTO(req))
}

// UpdateLeaveRequestStatus approves or rejects a request.
func (h *Handler) UpdateLeaveRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var body UpdateLeaveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := h.Service().UpdateRequestStatus(r.Context(), leave.RequestID(id), leave.Status(body.Status))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusOK, toLeaveRequestDTO(req))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Success: false, Error: message})
}

// writeDomainError maps a leave error to its HTTP status by category.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case leave.IsNotFound(err):
		status = http.StatusNotFound
	case leave.IsValidation(err):
		status = http.StatusBadRequest
	case leave.IsBusinessRule(err):
		status = http.StatusConflict
	}
	writeErrorMessage(w, status, err.Error())
}
