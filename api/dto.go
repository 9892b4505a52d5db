/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model from
  the wire contract. Field names match the persisted flat-record layout
  (camelCase, dates as YYYY-MM-DD strings, balances as plain numbers).

NAMING CONVENTION:
  - *DTO:  response types returned to clients
  - *Body: request body types from clients

ENVELOPE:
  Every response is wrapped in APIResponse: {"success": bool, "data": ...}
  on success, {"success": false, "error": "..."} on failure.

SEE ALSO:
  - handlers.go: fills these from domain types
*/
package api

import (
	"time"

	"github.com/lumahr/leave-engine/leave"
)

// =============================================================================
// RESPONSE ENVELOPE
// =============================================================================

type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	JoiningDate string `json:"joiningDate"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type CreateEmployeeBody struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	JoiningDate string `json:"joiningDate"`
}

func toEmployeeDTO(e leave.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:          int(e.ID),
		Name:        e.Name,
		Email:       e.Email,
		Department:  e.Department,
		JoiningDate: e.JoiningDate.String(),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// LEAVE TYPES
// =============================================================================

type LeaveTypeDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DaysAllowed int    `json:"daysAllowed"`
}

func toLeaveTypeDTO(lt leave.LeaveType) LeaveTypeDTO {
	return LeaveTypeDTO{
		ID:          int(lt.ID),
		Name:        lt.Name,
		Description: lt.Description,
		DaysAllowed: lt.DaysAllowed,
	}
}

// =============================================================================
// LEAVE BALANCES
// =============================================================================

type LeaveBalanceDTO struct {
	ID          int     `json:"id"`
	EmployeeID  int     `json:"employeeId"`
	LeaveTypeID int     `json:"leaveTypeId"`
	Balance     float64 `json:"balance"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toLeaveBalanceDTO(b leave.LeaveBalance) LeaveBalanceDTO {
	return LeaveBalanceDTO{
		ID:          int(b.ID),
		EmployeeID:  int(b.EmployeeID),
		LeaveTypeID: int(b.LeaveTypeID),
		Balance:     b.Balance.InexactFloat64(),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

type LeaveRequestDTO struct {
	ID          int    `json:"id"`
	EmployeeID  int    `json:"employeeId"`
	LeaveTypeID int    `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type CreateLeaveRequestBody struct {
	EmployeeID  int    `json:"employeeId"`
	LeaveTypeID int    `json:"leaveTypeId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Reason      string `json:"reason"`
}

type UpdateLeaveRequestBody struct {
	Status string `json:"status"`
}

func toLeaveRequestDTO(r leave.LeaveRequest) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:          int(r.ID),
		EmployeeID:  int(r.EmployeeID),
		LeaveTypeID: int(r.LeaveTypeID),
		StartDate:   r.StartDate.String(),
		EndDate:     r.EndDate.String(),
		Reason:      r.Reason,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioBody struct {
	ScenarioID string `json:"scenario_id"`
}

type ScenarioResultDTO struct {
	ScenarioID    string `json:"scenario_id"`
	Employees     int    `json:"employees"`
	LeaveRequests int    `json:"leave_requests"`
}
