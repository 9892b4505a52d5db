package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/leave-engine/leave"
	"github.com/lumahr/leave-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot() *leave.Snapshot {
	ts := time.Date(2023, time.June, 1, 9, 30, 0, 0, time.UTC)
	return &leave.Snapshot{
		Employees: []leave.Employee{
			{
				ID:          3,
				Name:        "Grace Hopper",
				Email:       "grace@company.com",
				Department:  "Engineering",
				JoiningDate: leave.NewDate(2021, time.September, 13),
				CreatedAt:   ts,
				UpdatedAt:   ts,
			},
		},
		LeaveTypes: leave.DefaultLeaveTypes(ts),
		LeaveBalances: []leave.LeaveBalance{
			{ID: 9, EmployeeID: 3, LeaveTypeID: 1, Balance: decimal.NewFromInt(14), CreatedAt: ts, UpdatedAt: ts},
		},
		LeaveRequests: []leave.LeaveRequest{
			{
				ID:          5,
				EmployeeID:  3,
				LeaveTypeID: 1,
				StartDate:   leave.NewDate(2023, time.August, 7),
				EndDate:     leave.NewDate(2023, time.August, 11),
				Reason:      "Travel",
				Status:      leave.StatusPending,
				CreatedAt:   ts,
				UpdatedAt:   ts,
			},
		},
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	// GIVEN a freshly migrated database
	store := newTestStore(t)

	// WHEN loading
	snap, err := store.Load(context.Background())

	// THEN there is nothing persisted yet
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	// GIVEN a saved snapshot
	store := newTestStore(t)
	want := sampleSnapshot()
	require.NoError(t, store.Save(context.Background(), want))

	// WHEN loading it back
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	// THEN identifiers, dates, balances, and statuses all survive
	require.Len(t, got.Employees, 1)
	assert.Equal(t, leave.EmployeeID(3), got.Employees[0].ID)
	assert.Equal(t, "grace@company.com", got.Employees[0].Email)
	assert.True(t, got.Employees[0].JoiningDate.Equal(want.Employees[0].JoiningDate))
	assert.True(t, got.Employees[0].CreatedAt.Equal(want.Employees[0].CreatedAt))

	require.Len(t, got.LeaveTypes, 4)
	assert.Equal(t, 90, got.LeaveTypes[2].DaysAllowed)

	require.Len(t, got.LeaveBalances, 1)
	assert.Equal(t, leave.BalanceID(9), got.LeaveBalances[0].ID)
	assert.True(t, got.LeaveBalances[0].Balance.Equal(decimal.NewFromInt(14)))

	require.Len(t, got.LeaveRequests, 1)
	assert.Equal(t, leave.RequestID(5), got.LeaveRequests[0].ID)
	assert.Equal(t, leave.StatusPending, got.LeaveRequests[0].Status)
	assert.True(t, got.LeaveRequests[0].EndDate.Equal(want.LeaveRequests[0].EndDate))
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	// GIVEN two saves where the second removes the request
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))

	smaller := sampleSnapshot()
	smaller.LeaveRequests = nil
	smaller.LeaveBalances[0].Balance = decimal.NewFromInt(19)
	require.NoError(t, store.Save(context.Background(), smaller))

	// WHEN loading
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	// THEN only the second snapshot's state remains
	assert.Empty(t, got.LeaveRequests)
	require.Len(t, got.LeaveBalances, 1)
	assert.True(t, got.LeaveBalances[0].Balance.Equal(decimal.NewFromInt(19)))
}

func TestFractionalBalanceSurvives(t *testing.T) {
	// GIVEN a balance with a fractional value
	store := newTestStore(t)
	snap := sampleSnapshot()
	half, err := decimal.NewFromString("12.5")
	require.NoError(t, err)
	snap.LeaveBalances[0].Balance = half
	require.NoError(t, store.Save(context.Background(), snap))

	// WHEN loading
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	// THEN no precision is lost
	assert.True(t, got.LeaveBalances[0].Balance.Equal(half))
}
