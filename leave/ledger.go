/*
ledger.go - Balance ledger for (employee, leave type) day counters

PURPOSE:
  Owns the LeaveBalance rows: provisioning at registration, lookups, and
  the only two mutations that exist - a debit when a request newly becomes
  APPROVED and a credit when an APPROVED request becomes REJECTED.

INVARIANTS:
  - Exactly one row per (employee, leave type) pair, enforced by the
    pair-keyed index in the Store rather than by convention.
  - A balance never goes negative: Debit refuses to overdraw.

PROVISIONING:
  Rows are created eagerly as part of employee registration, one per known
  leave type, seeded to that type's full allowance. Nothing is created
  lazily at request time; a missing row is an error the caller surfaces.

SEE ALSO:
  - service.go: decides WHEN to debit or credit
  - store.go:   where the rows actually live
*/
package leave

import (
	"time"
)

// Ledger mediates all access to LeaveBalance rows. It shares the Store's
// mutual-exclusion domain; see the concurrency note in store.go.
type Ledger struct {
	store *Store
}

func NewLedger(store *Store) *Ledger {
	return &Ledger{store: store}
}

// Provision creates one balance row per known leave type for a newly
// registered employee, each seeded to the type's full allowance. Must run
// in the same critical section as the employee insert so registration is
// atomic from the caller's point of view.
func (l *Ledger) Provision(employeeID EmployeeID, now time.Time) []LeaveBalance {
	created := make([]LeaveBalance, 0, len(l.store.leaveTypes))
	for _, lt := range l.store.leaveTypes {
		key := balanceKey{EmployeeID: employeeID, LeaveTypeID: lt.ID}
		if _, exists := l.store.balanceIdx[key]; exists {
			continue
		}
		row := LeaveBalance{
			ID:          BalanceID(l.store.nextBalanceID),
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
			Balance:     DaysAmount(lt.DaysAllowed),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		l.store.nextBalanceID++
		l.store.balanceIdx[key] = len(l.store.balances)
		l.store.balances = append(l.store.balances, row)
		created = append(created, row)
	}
	return created
}

// BalanceFor returns the row for the pair, if provisioned.
func (l *Ledger) BalanceFor(employeeID EmployeeID, leaveTypeID LeaveTypeID) (LeaveBalance, bool) {
	i, ok := l.store.balanceIdx[balanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}]
	if !ok {
		return LeaveBalance{}, false
	}
	return l.store.balances[i], true
}

// BalancesByEmployee returns all rows for an employee in creation order.
func (l *Ledger) BalancesByEmployee(employeeID EmployeeID) []LeaveBalance {
	var out []LeaveBalance
	for _, b := range l.store.balances {
		if b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	return out
}

// Debit subtracts days from the pair's balance. It fails with
// ErrBalanceNotFound when no row exists and with InsufficientBalanceError
// when the debit would drive the balance below zero; the row is untouched
// on failure.
func (l *Ledger) Debit(employeeID EmployeeID, leaveTypeID LeaveTypeID, days int, now time.Time) error {
	i, ok := l.store.balanceIdx[balanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}]
	if !ok {
		return ErrBalanceNotFound
	}
	row := &l.store.balances[i]
	amount := DaysAmount(days)
	if row.Balance.LessThan(amount) {
		return &InsufficientBalanceError{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Available:   row.Balance,
			Requested:   days,
		}
	}
	row.Balance = row.Balance.Sub(amount)
	row.UpdatedAt = now
	return nil
}

// Credit adds days back to the pair's balance. A missing row is reported as
// false and no credit occurs; callers treat that as a recoverable
// inconsistency, not a failure.
func (l *Ledger) Credit(employeeID EmployeeID, leaveTypeID LeaveTypeID, days int, now time.Time) bool {
	i, ok := l.store.balanceIdx[balanceKey{EmployeeID: employeeID, LeaveTypeID: leaveTypeID}]
	if !ok {
		return false
	}
	row := &l.store.balances[i]
	row.Balance = row.Balance.Add(DaysAmount(days))
	row.UpdatedAt = now
	return true
}
