/*
Package seed generates demo data for development and demonstrations.

Everything goes through the leave.Service, never directly into the store,
so every generated record satisfies the same invariants as real traffic:
balances are provisioned at registration, overlapping spans are refused,
approvals debit the ledger. Generation simply skips requests the service
rejects.

The name, department, and reason pools mirror the fixtures the frontend
was originally demoed with.
*/
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/lumahr/leave-engine/leave"
)

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
	"Matthew", "Betty", "Anthony", "Helen", "Mark", "Sandra",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
}

var departments = []string{
	"Engineering", "Marketing", "Sales", "Human Resources", "Finance", "Operations",
	"Information Technology", "Customer Service", "Research and Development", "Legal",
}

var reasons = []string{
	"Family vacation", "Medical appointment", "Personal matters", "Rest and relaxation",
	"Home maintenance", "Family event", "Travel", "Health checkup", "Mental health break",
	"Visiting relatives", "Outdoor activities", "Cultural event", "Workshop attendance",
}

// Populate registers n employees and submits a realistic mix of leave
// requests for them, approving most and rejecting a few. Requests the
// service refuses (overlap, insufficient balance) are skipped silently;
// demo data doesn't need every roll of the dice to land.
func Populate(ctx context.Context, svc *leave.Service, n int, rng *rand.Rand) error {
	today := leave.Today()

	for i := 1; i <= n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]

		// Joined between one and five years ago.
		joining := today.AddDays(-(365 + rng.Intn(4*365)))

		emp, err := svc.CreateEmployee(ctx, leave.CreateEmployeeParams{
			Name:        first + " " + last,
			Email:       fmt.Sprintf("%s.%s%d@company.com", strings.ToLower(first), strings.ToLower(last), i),
			Department:  departments[rng.Intn(len(departments))],
			JoiningDate: joining.String(),
		})
		if err != nil {
			return fmt.Errorf("seed employee %d: %w", i, err)
		}

		types := svc.LeaveTypes()
		requestCount := 1 + rng.Intn(5)
		for j := 0; j < requestCount; j++ {
			lt := types[rng.Intn(len(types))]
			start := joining.AddDays(1 + rng.Intn(365))
			end := start.AddDays(rng.Intn(5))

			req, err := svc.CreateRequest(ctx, leave.CreateRequestParams{
				EmployeeID:  emp.ID,
				LeaveTypeID: lt.ID,
				StartDate:   start.String(),
				EndDate:     end.String(),
				Reason:      reasons[rng.Intn(len(reasons))],
			})
			if err != nil {
				if leave.IsBusinessRule(err) {
					continue
				}
				return fmt.Errorf("seed request for employee %d: %w", int(emp.ID), err)
			}

			// Roughly 70% approved, 10% rejected, rest left pending.
			switch roll := rng.Intn(10); {
			case roll < 7:
				if _, err := svc.UpdateRequestStatus(ctx, req.ID, leave.StatusApproved); err != nil &&
					!errors.Is(err, leave.ErrInsufficientBalance) {
					return fmt.Errorf("seed approval: %w", err)
				}
			case roll < 8:
				if _, err := svc.UpdateRequestStatus(ctx, req.ID, leave.StatusRejected); err != nil {
					return fmt.Errorf("seed rejection: %w", err)
				}
			}
		}
	}
	return nil
}

// SmallTeam seeds a handful of employees with light request history.
func SmallTeam(ctx context.Context, svc *leave.Service) error {
	return Populate(ctx, svc, 5, rand.New(rand.NewSource(7)))
}

// BusyQuarter seeds a larger roster with heavier request traffic.
func BusyQuarter(ctx context.Context, svc *leave.Service) error {
	return Populate(ctx, svc, 20, rand.New(rand.NewSource(42)))
}
