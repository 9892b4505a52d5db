/*
store.go - In-memory entity collections and snapshot persistence contract

PURPOSE:
  Holds the four entity collections and issues unique, monotonically
  increasing integer ids per collection (next id = max existing id + 1,
  or 1 when the collection is empty). No validation happens here; that is
  the Service's job. No deletion operations exist at all.

CONCURRENCY:
  Store is NOT safe for concurrent use on its own. All access is funneled
  through the Service, which serializes every check-then-write sequence
  behind a single mutex (see service.go). Keeping the lock out of the Store
  avoids double-locking between the Service and the Ledger, which both
  touch the same collections inside one operation.

SNAPSHOTS:
  Snapshot is a deep copy of all four collections, serializable as four
  independent arrays of flat records. SnapshotStore is the pluggable
  load/save boundary; saving is best-effort and out-of-band, never part of
  an operation's transactional boundary.

IMPLEMENTATIONS OF SnapshotStore:
  - store/jsonfile: four flat JSON files
  - store/sqlite:   four tables, swapped atomically in one transaction

SEE ALSO:
  - ledger.go:  balance rows live here but are mutated only by the Ledger
  - service.go: locking and lifecycle
*/
package leave

import "context"

// =============================================================================
// STORE - The four entity collections
// =============================================================================

// balanceKey identifies a balance row structurally, enforcing the
// one-row-per-pair invariant by construction.
type balanceKey struct {
	EmployeeID  EmployeeID
	LeaveTypeID LeaveTypeID
}

type Store struct {
	employees  []Employee
	leaveTypes []LeaveType
	balances   []LeaveBalance
	requests   []LeaveRequest

	// balanceIdx maps (employee, leave type) to an index into balances.
	balanceIdx map[balanceKey]int

	nextEmployeeID int
	nextBalanceID  int
	nextRequestID  int
}

// NewStore returns an empty store. Leave types are seeded by the caller
// (see Service constructors and DefaultLeaveTypes).
func NewStore() *Store {
	return &Store{
		balanceIdx:     make(map[balanceKey]int),
		nextEmployeeID: 1,
		nextBalanceID:  1,
		nextRequestID:  1,
	}
}

// NewStoreFromSnapshot rebuilds a store from persisted state. Id allocators
// resume at max existing id + 1. When two persisted balance rows collide on
// the same (employee, leave type) pair, the first row wins, matching the
// lookup order of the original flat-file data.
func NewStoreFromSnapshot(snap *Snapshot) *Store {
	s := NewStore()
	if snap == nil {
		return s
	}

	s.employees = append(s.employees, snap.Employees...)
	s.leaveTypes = append(s.leaveTypes, snap.LeaveTypes...)
	s.requests = append(s.requests, snap.LeaveRequests...)
	for _, b := range snap.LeaveBalances {
		key := balanceKey{EmployeeID: b.EmployeeID, LeaveTypeID: b.LeaveTypeID}
		if _, dup := s.balanceIdx[key]; dup {
			continue
		}
		s.balanceIdx[key] = len(s.balances)
		s.balances = append(s.balances, b)
	}

	for _, e := range s.employees {
		if int(e.ID) >= s.nextEmployeeID {
			s.nextEmployeeID = int(e.ID) + 1
		}
	}
	for _, b := range s.balances {
		if int(b.ID) >= s.nextBalanceID {
			s.nextBalanceID = int(b.ID) + 1
		}
	}
	for _, r := range s.requests {
		if int(r.ID) >= s.nextRequestID {
			s.nextRequestID = int(r.ID) + 1
		}
	}
	return s
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// InsertEmployee assigns the next id, appends, and returns the stored record.
func (s *Store) InsertEmployee(e Employee) Employee {
	e.ID = EmployeeID(s.nextEmployeeID)
	s.nextEmployeeID++
	s.employees = append(s.employees, e)
	return e
}

func (s *Store) EmployeeByID(id EmployeeID) (Employee, bool) {
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

func (s *Store) EmployeeExists(id EmployeeID) bool {
	_, ok := s.EmployeeByID(id)
	return ok
}

func (s *Store) EmployeeByEmail(email string) (Employee, bool) {
	for _, e := range s.employees {
		if e.Email == email {
			return e, true
		}
	}
	return Employee{}, false
}

func (s *Store) Employees() []Employee {
	out := make([]Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// =============================================================================
// LEAVE TYPES
// =============================================================================

// SetLeaveTypes replaces the reference set. Used at construction only.
func (s *Store) SetLeaveTypes(types []LeaveType) {
	s.leaveTypes = make([]LeaveType, len(types))
	copy(s.leaveTypes, types)
}

func (s *Store) LeaveTypeByID(id LeaveTypeID) (LeaveType, bool) {
	for _, lt := range s.leaveTypes {
		if lt.ID == id {
			return lt, true
		}
	}
	return LeaveType{}, false
}

func (s *Store) LeaveTypes() []LeaveType {
	out := make([]LeaveType, len(s.leaveTypes))
	copy(out, s.leaveTypes)
	return out
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func (s *Store) InsertRequest(r LeaveRequest) LeaveRequest {
	r.ID = RequestID(s.nextRequestID)
	s.nextRequestID++
	s.requests = append(s.requests, r)
	return r
}

func (s *Store) RequestByID(id RequestID) (LeaveRequest, bool) {
	for _, r := range s.requests {
		if r.ID == id {
			return r, true
		}
	}
	return LeaveRequest{}, false
}

// ReplaceRequest overwrites the stored request with the same id.
func (s *Store) ReplaceRequest(r LeaveRequest) bool {
	for i := range s.requests {
		if s.requests[i].ID == r.ID {
			s.requests[i] = r
			return true
		}
	}
	return false
}

func (s *Store) Requests() []LeaveRequest {
	out := make([]LeaveRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Store) RequestsByEmployee(id EmployeeID) []LeaveRequest {
	var out []LeaveRequest
	for _, r := range s.requests {
		if r.EmployeeID == id {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// SNAPSHOT - Deep copy of all collections
// =============================================================================

// Snapshot carries the full persisted state: four independent collections
// keyed by integer id.
type Snapshot struct {
	Employees     []Employee     `json:"employees"`
	LeaveTypes    []LeaveType    `json:"leaveTypes"`
	LeaveBalances []LeaveBalance `json:"leaveBalances"`
	LeaveRequests []LeaveRequest `json:"leaveRequests"`
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		Employees:     make([]Employee, len(s.employees)),
		LeaveTypes:    make([]LeaveType, len(s.leaveTypes)),
		LeaveBalances: make([]LeaveBalance, len(s.balances)),
		LeaveRequests: make([]LeaveRequest, len(s.requests)),
	}
	copy(snap.Employees, s.employees)
	copy(snap.LeaveTypes, s.leaveTypes)
	copy(snap.LeaveBalances, s.balances)
	copy(snap.LeaveRequests, s.requests)
	return snap
}

// SnapshotStore is the pluggable persistence boundary. Load returns
// (nil, nil) when nothing has been persisted yet.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
