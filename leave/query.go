/*
query.go - Read-only accessors

Pure reads over the Store and Ledger under the read lock: no validation, no
side effects, no caching. Results reflect state at call time and are copies,
so callers can't mutate internal collections.
*/
package leave

// Employees returns all employees in registration order.
func (s *Service) Employees() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Employees()
}

func (s *Service) EmployeeByID(id EmployeeID) (Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.EmployeeByID(id)
}

// LeaveTypes returns the reference set of leave types.
func (s *Service) LeaveTypes() []LeaveType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.LeaveTypes()
}

func (s *Service) LeaveTypeByID(id LeaveTypeID) (LeaveType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.LeaveTypeByID(id)
}

// Requests returns every leave request regardless of owner or status.
func (s *Service) Requests() []LeaveRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Requests()
}

func (s *Service) RequestsByEmployee(id EmployeeID) []LeaveRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.RequestsByEmployee(id)
}

func (s *Service) RequestByID(id RequestID) (LeaveRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.RequestByID(id)
}

// BalancesByEmployee returns the employee's balance rows in creation order.
func (s *Service) BalancesByEmployee(id EmployeeID) []LeaveBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.BalancesByEmployee(id)
}

// BalanceFor returns the balance row for one (employee, leave type) pair.
func (s *Service) BalanceFor(employeeID EmployeeID, leaveTypeID LeaveTypeID) (LeaveBalance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.BalanceFor(employeeID, leaveTypeID)
}
