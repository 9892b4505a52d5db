package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/leave-engine/leave"
)

func newLedgerFixture(t *testing.T) (*leave.Store, *leave.Ledger, time.Time) {
	t.Helper()
	now := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	store := leave.NewStore()
	store.SetLeaveTypes(leave.DefaultLeaveTypes(now))
	return store, leave.NewLedger(store), now
}

func TestLedger_ProvisionSeedsFullAllowancePerType(t *testing.T) {
	store, ledger, now := newLedgerFixture(t)
	emp := store.InsertEmployee(leave.Employee{Name: "Jane", Email: "jane@company.com"})

	rows := ledger.Provision(emp.ID, now)
	require.Len(t, rows, 4)

	for i, row := range rows {
		assert.Equal(t, leave.BalanceID(i+1), row.ID, "sequential balance ids")
		lt, ok := store.LeaveTypeByID(row.LeaveTypeID)
		require.True(t, ok)
		assert.True(t, row.Balance.Equal(leave.DaysAmount(lt.DaysAllowed)))
	}
}

func TestLedger_ProvisionIsIdempotentPerPair(t *testing.T) {
	// Provisioning twice must not create duplicate (employee, type) rows;
	// the pair index enforces uniqueness structurally.
	store, ledger, now := newLedgerFixture(t)
	emp := store.InsertEmployee(leave.Employee{Name: "Jane", Email: "jane@company.com"})

	first := ledger.Provision(emp.ID, now)
	second := ledger.Provision(emp.ID, now)

	assert.Len(t, first, 4)
	assert.Empty(t, second)
	assert.Len(t, ledger.BalancesByEmployee(emp.ID), 4)
}

func TestLedger_DebitAndCredit(t *testing.T) {
	store, ledger, now := newLedgerFixture(t)
	emp := store.InsertEmployee(leave.Employee{Name: "Jane", Email: "jane@company.com"})
	ledger.Provision(emp.ID, now)

	annual := leave.LeaveTypeID(1)

	require.NoError(t, ledger.Debit(emp.ID, annual, 5, now))
	row, ok := ledger.BalanceFor(emp.ID, annual)
	require.True(t, ok)
	assert.True(t, row.Balance.Equal(decimal.NewFromInt(15)))

	assert.True(t, ledger.Credit(emp.ID, annual, 5, now))
	row, _ = ledger.BalanceFor(emp.ID, annual)
	assert.True(t, row.Balance.Equal(decimal.NewFromInt(20)))
}

func TestLedger_DebitRefusesOverdraw(t *testing.T) {
	// GIVEN: 20 days of annual leave
	// WHEN: Debiting 21
	// THEN: The debit fails and the row is untouched

	store, ledger, now := newLedgerFixture(t)
	emp := store.InsertEmployee(leave.Employee{Name: "Jane", Email: "jane@company.com"})
	ledger.Provision(emp.ID, now)

	err := ledger.Debit(emp.ID, 1, 21, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	var ib *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.True(t, ib.Available.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 21, ib.Requested)

	row, _ := ledger.BalanceFor(emp.ID, 1)
	assert.True(t, row.Balance.Equal(decimal.NewFromInt(20)))
}

func TestLedger_DebitToExactlyZeroAllowed(t *testing.T) {
	store, ledger, now := newLedgerFixture(t)
	emp := store.InsertEmployee(leave.Employee{Name: "Jane", Email: "jane@company.com"})
	ledger.Provision(emp.ID, now)

	require.NoError(t, ledger.Debit(emp.ID, 1, 20, now))
	row, _ := ledger.BalanceFor(emp.ID, 1)
	assert.True(t, row.Balance.IsZero())
}

func TestLedger_MissingRow(t *testing.T) {
	store, ledger, now := newLedgerFixture(t)
	emp := store.InsertEmployee(leave.Employee{Name: "Jane", Email: "jane@company.com"})
	// No provisioning.

	_, ok := ledger.BalanceFor(emp.ID, 1)
	assert.False(t, ok)

	err := ledger.Debit(emp.ID, 1, 1, now)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	assert.False(t, ledger.Credit(emp.ID, 1, 1, now), "credit reports the missing row")
}
