package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumahr/leave-engine/leave"
	"github.com/lumahr/leave-engine/seed"
)

func newSeededService(t *testing.T, load func(context.Context, *leave.Service) error) *leave.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := leave.NewService(leave.NewStore(), leave.WithLogger(logger))
	require.NoError(t, load(context.Background(), svc))
	return svc
}

func TestSmallTeamPopulatesRoster(t *testing.T) {
	svc := newSeededService(t, seed.SmallTeam)

	employees := svc.Employees()
	assert.Len(t, employees, 5)

	// Every employee carries a full set of provisioned balance rows.
	for _, emp := range employees {
		assert.Len(t, svc.BalancesByEmployee(emp.ID), 4)
	}
}

func TestSeededDataSatisfiesInvariants(t *testing.T) {
	svc := newSeededService(t, seed.BusyQuarter)

	require.Len(t, svc.Employees(), 20)

	// All generated requests carry a known status and a sane date range.
	for _, req := range svc.Requests() {
		assert.True(t, req.Status.Valid(), "request %d has status %q", int(req.ID), req.Status)
		assert.True(t, req.StartDate.BeforeOrEqual(req.EndDate))
	}

	// Approvals go through the ledger, so no balance can be negative.
	for _, emp := range svc.Employees() {
		for _, bal := range svc.BalancesByEmployee(emp.ID) {
			assert.False(t, bal.Balance.LessThan(decimal.Zero),
				"employee %d type %d balance %s", int(emp.ID), int(bal.LeaveTypeID), bal.Balance)
		}
	}
}

func TestSeedingIsDeterministic(t *testing.T) {
	a := newSeededService(t, seed.SmallTeam)
	b := newSeededService(t, seed.SmallTeam)

	ea, eb := a.Employees(), b.Employees()
	require.Equal(t, len(ea), len(eb))
	for i := range ea {
		assert.Equal(t, ea[i].Email, eb[i].Email)
	}
	assert.Equal(t, len(a.Requests()), len(b.Requests()))
}
