package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/leave-engine/leave"
)

func TestStore_IDAllocationResumesAfterSnapshot(t *testing.T) {
	// GIVEN: Persisted state with gaps in the id sequences
	// WHEN: Rebuilding the store
	// THEN: New ids continue at max existing id + 1

	now := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	snap := &leave.Snapshot{
		Employees: []leave.Employee{
			{ID: 3, Name: "C", Email: "c@company.com"},
			{ID: 7, Name: "G", Email: "g@company.com"},
		},
		LeaveBalances: []leave.LeaveBalance{
			{ID: 12, EmployeeID: 3, LeaveTypeID: 1, Balance: decimal.NewFromInt(20)},
		},
		LeaveRequests: []leave.LeaveRequest{
			{ID: 41, EmployeeID: 3, LeaveTypeID: 1, Status: leave.StatusPending,
				StartDate: leave.NewDate(2023, time.February, 1), EndDate: leave.NewDate(2023, time.February, 2)},
		},
	}

	store := leave.NewStoreFromSnapshot(snap)

	emp := store.InsertEmployee(leave.Employee{Name: "H", Email: "h@company.com", CreatedAt: now})
	assert.Equal(t, leave.EmployeeID(8), emp.ID)

	req := store.InsertRequest(leave.LeaveRequest{EmployeeID: emp.ID, LeaveTypeID: 1, Status: leave.StatusPending})
	assert.Equal(t, leave.RequestID(42), req.ID)

	store.SetLeaveTypes(leave.DefaultLeaveTypes(now))
	ledger := leave.NewLedger(store)
	rows := ledger.Provision(emp.ID, now)
	require.NotEmpty(t, rows)
	assert.Equal(t, leave.BalanceID(13), rows[0].ID)
}

func TestStore_EmptyCollectionsStartAtOne(t *testing.T) {
	store := leave.NewStore()
	emp := store.InsertEmployee(leave.Employee{Name: "A", Email: "a@company.com"})
	assert.Equal(t, leave.EmployeeID(1), emp.ID)
	req := store.InsertRequest(leave.LeaveRequest{EmployeeID: emp.ID})
	assert.Equal(t, leave.RequestID(1), req.ID)
}

func TestStore_DuplicateBalancePairsInSnapshot_FirstRowWins(t *testing.T) {
	snap := &leave.Snapshot{
		LeaveBalances: []leave.LeaveBalance{
			{ID: 1, EmployeeID: 1, LeaveTypeID: 1, Balance: decimal.NewFromInt(20)},
			{ID: 2, EmployeeID: 1, LeaveTypeID: 1, Balance: decimal.NewFromInt(5)},
		},
	}

	store := leave.NewStoreFromSnapshot(snap)
	ledger := leave.NewLedger(store)

	rows := ledger.BalancesByEmployee(1)
	require.Len(t, rows, 1, "pair uniqueness enforced on load")
	assert.True(t, rows[0].Balance.Equal(decimal.NewFromInt(20)))
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	store := leave.NewStore()
	store.SetLeaveTypes(leave.DefaultLeaveTypes(time.Now()))
	emp := store.InsertEmployee(leave.Employee{Name: "A", Email: "a@company.com"})

	snap := store.Snapshot()
	snap.Employees[0].Name = "mutated"

	got, ok := store.EmployeeByID(emp.ID)
	require.True(t, ok)
	assert.Equal(t, "A", got.Name, "snapshot mutation must not leak into the store")
}

func TestStore_ReplaceRequest(t *testing.T) {
	store := leave.NewStore()
	req := store.InsertRequest(leave.LeaveRequest{EmployeeID: 1, Status: leave.StatusPending})

	req.Status = leave.StatusApproved
	assert.True(t, store.ReplaceRequest(req))

	got, ok := store.RequestByID(req.ID)
	require.True(t, ok)
	assert.Equal(t, leave.StatusApproved, got.Status)

	assert.False(t, store.ReplaceRequest(leave.LeaveRequest{ID: 999}))
}
