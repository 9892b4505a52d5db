/*
service.go - Leave request lifecycle and employee registration

PURPOSE:
  The only component with nontrivial rules. Validates creation, computes
  inclusive day counts, detects overlaps, and performs status transitions
  with their ledger effects.

REQUEST FLOW:

	submit ──▶ 10 ordered checks ──▶ PENDING          (no ledger effect)
	                                    │
	                     ┌──────────────┴──────────────┐
	                     ▼                             ▼
	                 APPROVED (debit days)        REJECTED (no effect)
	                     │                             ▲
	                     └── REJECTED (credit days) ───┘

  No status ever returns to PENDING. Transitioning to the current status is
  an idempotent no-op. A REJECTED request may still be APPROVED later; that
  path debits exactly like PENDING → APPROVED.

VALIDATION ORDER:
  Checks run in a fixed order and the first failure wins, so a fundamental
  error (unknown employee) is never masked by a later one (overlap). The
  order is: employee, leave type, required fields, date parse, range
  direction, joining date, day count, balance row, sufficiency, overlap.

CONCURRENCY:
  One RWMutex guards every check-then-write sequence, making create and
  transition atomic with respect to each other. Queries (query.go) take the
  read lock. The snapshot copy is taken inside the lock; the save happens
  outside it, best-effort, so no operation blocks on I/O while holding the
  lock.

SEE ALSO:
  - ledger.go: debit/credit semantics
  - query.go:  read-only accessors
*/
package leave

import (
	"context"
	"log/slog"
	"regexp"
	"sync"
	"time"
)

// emailPattern is deliberately RFC-lite: something@something.something
// with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// =============================================================================
// SERVICE
// =============================================================================

// Service owns the Store and Ledger and serializes all access to them.
type Service struct {
	mu     sync.RWMutex
	store  *Store
	ledger *Ledger

	snapshots SnapshotStore // nil disables persistence
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithSnapshotStore enables best-effort persistence after each mutation.
func WithSnapshotStore(ss SnapshotStore) Option {
	return func(s *Service) { s.snapshots = ss }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the time source. Tests pin this for deterministic
// joining-date and timestamp behavior.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wraps a store. When the store carries no leave types (fresh
// start, or a snapshot predating type persistence) the default reference
// set is seeded.
func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		ledger: NewLedger(store),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(store.leaveTypes) == 0 {
		store.SetLeaveTypes(DefaultLeaveTypes(s.now().UTC()))
	}
	return s
}

// =============================================================================
// EMPLOYEE REGISTRATION
// =============================================================================

type CreateEmployeeParams struct {
	Name        string
	Email       string
	Department  string
	JoiningDate string
}

// CreateEmployee registers an employee and provisions one balance row per
// known leave type, atomically from the caller's point of view.
func (s *Service) CreateEmployee(ctx context.Context, p CreateEmployeeParams) (Employee, error) {
	s.mu.Lock()
	emp, snap, err := s.createEmployeeLocked(p)
	s.mu.Unlock()
	if err != nil {
		return Employee{}, err
	}
	s.persist(ctx, snap)
	return emp, nil
}

func (s *Service) createEmployeeLocked(p CreateEmployeeParams) (Employee, *Snapshot, error) {
	if p.Name == "" || p.Email == "" || p.Department == "" || p.JoiningDate == "" {
		return Employee{}, nil, ErrMissingField
	}
	if !emailPattern.MatchString(p.Email) {
		return Employee{}, nil, ErrInvalidEmail
	}
	if _, taken := s.store.EmployeeByEmail(p.Email); taken {
		return Employee{}, nil, ErrDuplicateEmail
	}
	joining, err := ParseDate(p.JoiningDate)
	if err != nil {
		return Employee{}, nil, ErrInvalidDate
	}
	now := s.now().UTC()
	if joining.After(DateOf(now)) {
		return Employee{}, nil, ErrFutureJoiningDate
	}

	emp := s.store.InsertEmployee(Employee{
		Name:        p.Name,
		Email:       p.Email,
		Department:  p.Department,
		JoiningDate: joining,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	s.ledger.Provision(emp.ID, now)
	return emp, s.store.Snapshot(), nil
}

// =============================================================================
// REQUEST CREATION
// =============================================================================

type CreateRequestParams struct {
	EmployeeID  EmployeeID
	LeaveTypeID LeaveTypeID
	StartDate   string
	EndDate     string
	Reason      string
}

// CreateRequest validates and stores a new PENDING request. Balances are
// not touched at creation; debiting happens only on approval.
func (s *Service) CreateRequest(ctx context.Context, p CreateRequestParams) (LeaveRequest, error) {
	s.mu.Lock()
	req, snap, err := s.createRequestLocked(p)
	s.mu.Unlock()
	if err != nil {
		return LeaveRequest{}, err
	}
	s.persist(ctx, snap)
	return req, nil
}

func (s *Service) createRequestLocked(p CreateRequestParams) (LeaveRequest, *Snapshot, error) {
	emp, ok := s.store.EmployeeByID(p.EmployeeID)
	if !ok {
		return LeaveRequest{}, nil, ErrEmployeeNotFound
	}
	if _, ok := s.store.LeaveTypeByID(p.LeaveTypeID); !ok {
		return LeaveRequest{}, nil, ErrInvalidLeaveType
	}
	if p.StartDate == "" || p.EndDate == "" || p.Reason == "" {
		return LeaveRequest{}, nil, ErrMissingField
	}
	start, errStart := ParseDate(p.StartDate)
	end, errEnd := ParseDate(p.EndDate)
	if errStart != nil || errEnd != nil {
		return LeaveRequest{}, nil, ErrInvalidDate
	}
	if end.Before(start) {
		return LeaveRequest{}, nil, ErrInvalidRange
	}
	if start.Before(emp.JoiningDate) {
		return LeaveRequest{}, nil, ErrPredatesJoining
	}
	days := InclusiveDays(start, end)
	if days < 1 {
		return LeaveRequest{}, nil, ErrEmptyRange
	}
	balance, ok := s.ledger.BalanceFor(p.EmployeeID, p.LeaveTypeID)
	if !ok {
		return LeaveRequest{}, nil, ErrBalanceNotFound
	}
	if balance.Balance.LessThan(DaysAmount(days)) {
		return LeaveRequest{}, nil, &InsufficientBalanceError{
			EmployeeID:  p.EmployeeID,
			LeaveTypeID: p.LeaveTypeID,
			Available:   balance.Balance,
			Requested:   days,
		}
	}
	if s.hasOverlapLocked(p.EmployeeID, start, end) {
		return LeaveRequest{}, nil, ErrOverlappingRequest
	}

	now := s.now().UTC()
	req := s.store.InsertRequest(LeaveRequest{
		EmployeeID:  p.EmployeeID,
		LeaveTypeID: p.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      p.Reason,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return req, s.store.Snapshot(), nil
}

// hasOverlapLocked reports whether any non-REJECTED request of the employee
// shares a day with [start, end]. Rejected requests release their span.
func (s *Service) hasOverlapLocked(employeeID EmployeeID, start, end Date) bool {
	for _, r := range s.store.requests {
		if r.EmployeeID != employeeID || r.Status == StatusRejected {
			continue
		}
		if Overlaps(start, end, r.StartDate, r.EndDate) {
			return true
		}
	}
	return false
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

// UpdateRequestStatus transitions a request and applies the matching ledger
// effect:
//
//	→ APPROVED  (from PENDING or REJECTED)  debit the span's day count
//	APPROVED → REJECTED                     credit the day count back
//	PENDING  → REJECTED                     no ledger effect
//
// Reverting to PENDING is illegal. Transitioning to the current status is
// an idempotent no-op returning the unchanged request.
func (s *Service) UpdateRequestStatus(ctx context.Context, id RequestID, status Status) (LeaveRequest, error) {
	s.mu.Lock()
	req, snap, err := s.updateStatusLocked(id, status)
	s.mu.Unlock()
	if err != nil {
		return LeaveRequest{}, err
	}
	if snap != nil {
		s.persist(ctx, snap)
	}
	return req, nil
}

func (s *Service) updateStatusLocked(id RequestID, status Status) (LeaveRequest, *Snapshot, error) {
	req, ok := s.store.RequestByID(id)
	if !ok {
		return LeaveRequest{}, nil, ErrRequestNotFound
	}
	if !status.Valid() {
		return LeaveRequest{}, nil, ErrInvalidStatus
	}
	if req.Status != StatusPending && status == StatusPending {
		return LeaveRequest{}, nil, ErrIllegalTransition
	}
	if req.Status == status {
		// Idempotent: nothing to do, nothing to persist.
		return req, nil, nil
	}

	now := s.now().UTC()
	days := req.Days()

	if status == StatusApproved {
		if err := s.ledger.Debit(req.EmployeeID, req.LeaveTypeID, days, now); err != nil {
			return LeaveRequest{}, nil, err
		}
	}
	if req.Status == StatusApproved && status == StatusRejected {
		if !s.ledger.Credit(req.EmployeeID, req.LeaveTypeID, days, now) {
			// Recoverable inconsistency: the transition still completes.
			s.logger.Warn("balance row missing on refund, credit skipped",
				"requestId", int(req.ID),
				"employeeId", int(req.EmployeeID),
				"leaveTypeId", int(req.LeaveTypeID))
		}
	}

	req.Status = status
	req.UpdatedAt = now
	s.store.ReplaceRequest(req)
	return req, s.store.Snapshot(), nil
}

// =============================================================================
// PERSISTENCE (best-effort, out-of-band)
// =============================================================================

func (s *Service) persist(ctx context.Context, snap *Snapshot) {
	if s.snapshots == nil || snap == nil {
		return
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.logger.Warn("snapshot save failed", "error", err)
	}
}
