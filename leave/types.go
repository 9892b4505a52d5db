/*
Package leave implements the leave-management core: employees, leave types,
per-employee leave balances, and leave requests with an approve/reject
workflow.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee:     a registered staff member with a joining date
  - LeaveType:    a category of absence with an annual day allowance
  - LeaveBalance: remaining entitled days for one (employee, leave type) pair
  - LeaveRequest: an inclusive date span awaiting or past approval
  - Status:       PENDING / APPROVED / REJECTED state machine

DESIGN PRINCIPLES:
 1. Sequential identity: every collection hands out integer ids, max+1 style
 2. Precision: balances use decimal.Decimal so day arithmetic is exact
 3. Type safety: distinct id types prevent mixing employee and request ids
 4. One-way bias: a request never returns to PENDING once decided

SEE ALSO:
  - service.go: validation and lifecycle transitions
  - ledger.go:  balance provisioning, debits and credits
  - store.go:   the in-memory collections behind everything
*/
package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type (
	EmployeeID  int
	LeaveTypeID int
	BalanceID   int
	RequestID   int
)

// =============================================================================
// ENTITIES
// =============================================================================

// Employee is immutable once registered, except UpdatedAt bookkeeping.
// Employees are never deleted.
type Employee struct {
	ID          EmployeeID `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Department  string     `json:"department"`
	JoiningDate Date       `json:"joiningDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// LeaveType is reference data: a category of absence and its annual
// entitlement in days.
type LeaveType struct {
	ID          LeaveTypeID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	DaysAllowed int         `json:"daysAllowed"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// LeaveBalance is the remaining entitlement for one (employee, leave type)
// pair. Exactly one row exists per pair; rows are created when the employee
// is registered, seeded to the type's full allowance. The balance never goes
// negative: it is debited only when a request newly becomes APPROVED and
// refunded only when an APPROVED request becomes REJECTED.
type LeaveBalance struct {
	ID          BalanceID       `json:"id"`
	EmployeeID  EmployeeID      `json:"employeeId"`
	LeaveTypeID LeaveTypeID     `json:"leaveTypeId"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// LeaveRequest covers the inclusive span [StartDate, EndDate].
// Requests are created PENDING and are never deleted.
type LeaveRequest struct {
	ID          RequestID   `json:"id"`
	EmployeeID  EmployeeID  `json:"employeeId"`
	LeaveTypeID LeaveTypeID `json:"leaveTypeId"`
	StartDate   Date        `json:"startDate"`
	EndDate     Date        `json:"endDate"`
	Reason      string      `json:"reason"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Days returns the inclusive day count of the request's span.
func (r LeaveRequest) Days() int {
	return InclusiveDays(r.StartDate, r.EndDate)
}

// =============================================================================
// REQUEST STATUS
// =============================================================================

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// =============================================================================
// DEFAULT LEAVE TYPES
// =============================================================================

// DefaultLeaveTypes returns the built-in reference set used when no leave
// types have been persisted.
func DefaultLeaveTypes(now time.Time) []LeaveType {
	return []LeaveType{
		{ID: 1, Name: "Annual", Description: "Annual leave", DaysAllowed: 20, CreatedAt: now, UpdatedAt: now},
		{ID: 2, Name: "Sick", Description: "Sick leave", DaysAllowed: 10, CreatedAt: now, UpdatedAt: now},
		{ID: 3, Name: "Maternity", Description: "Maternity leave", DaysAllowed: 90, CreatedAt: now, UpdatedAt: now},
		{ID: 4, Name: "Paternity", Description: "Paternity leave", DaysAllowed: 15, CreatedAt: now, UpdatedAt: now},
	}
}

// DaysAmount converts a whole day count to a decimal balance amount.
func DaysAmount(days int) decimal.Decimal {
	return decimal.NewFromInt(int64(days))
}
