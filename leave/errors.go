/*
errors.go - Centralized error types for the leave core

PURPOSE:
  All core errors in one place. Every operation returns one of these rather
  than panicking; the HTTP boundary maps them to status codes using the
  classification helpers at the bottom.

ERROR CATEGORIES:
 1. NotFound     - employee / leave type / request / balance row absent
 2. Validation   - missing or malformed input, bad dates, inverted ranges
 3. BusinessRule - insufficient balance, overlapping spans, illegal transitions

USAGE:
  if errors.Is(err, leave.ErrInsufficientBalance) { ... }

  var ib *leave.InsufficientBalanceError
  if errors.As(err, &ib) { log(ib.Available, ib.Requested) }

SEE ALSO:
  - service.go: produces these errors in a defined precedence order
  - api/handlers.go: maps categories to HTTP statuses
*/
package leave

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidLeaveType is returned when a referenced leave type doesn't exist.
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// ErrRequestNotFound is returned when a referenced leave request doesn't exist.
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrBalanceNotFound is returned when no balance row exists for the
	// (employee, leave type) pair.
	ErrBalanceNotFound = errors.New("leave balance not found")

	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("all fields are required")

	// ErrInvalidEmail is returned when an email fails the format check.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrDuplicateEmail is returned when another employee already uses the email.
	ErrDuplicateEmail = errors.New("employee with this email already exists")

	// ErrInvalidDate is returned when a date string doesn't parse.
	ErrInvalidDate = errors.New("invalid date")

	// ErrFutureJoiningDate is returned when a joining date lies after today.
	ErrFutureJoiningDate = errors.New("joining date cannot be in the future")

	// ErrInvalidRange is returned when a span's end date precedes its start.
	ErrInvalidRange = errors.New("end date cannot be before start date")

	// ErrPredatesJoining is returned when a span starts before the employee joined.
	ErrPredatesJoining = errors.New("cannot apply for leave before joining date")

	// ErrEmptyRange is returned when a span covers no days. Unreachable while
	// ErrInvalidRange is checked first.
	ErrEmptyRange = errors.New("leave request must be for at least one day")

	// ErrInsufficientBalance is returned when a span exceeds the remaining balance.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	// ErrOverlappingRequest is returned when a non-rejected request of the same
	// employee already covers one of the span's days.
	ErrOverlappingRequest = errors.New("overlapping leave request exists")

	// ErrInvalidStatus is returned when a transition targets an unknown status.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrIllegalTransition is returned when a decided request would revert to PENDING.
	ErrIllegalTransition = errors.New("cannot change status back to pending")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientBalanceError reports both sides of a balance shortage.
type InsufficientBalanceError struct {
	EmployeeID  EmployeeID
	LeaveTypeID LeaveTypeID
	Available   decimal.Decimal
	Requested   int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient leave balance. Available: %s days, Requested: %d days",
		e.Available.String(), e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsNotFound reports whether the error means a referenced record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrInvalidLeaveType) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrBalanceNotFound)
}

// IsValidation reports whether the error is due to invalid caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrFutureJoiningDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrPredatesJoining) ||
		errors.Is(err, ErrEmptyRange) ||
		errors.Is(err, ErrInvalidStatus)
}

// IsBusinessRule reports whether the error is a domain rule rejection on
// otherwise well-formed input.
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrOverlappingRequest) ||
		errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrDuplicateEmail)
}
