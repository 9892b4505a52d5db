/*
Package sqlite persists snapshots in a SQLite database, one table per
collection.

SNAPSHOT SEMANTICS:
  The in-memory Store is authoritative; this package only mirrors it. Save
  replaces all four tables inside one transaction, so readers of the file
  never observe a half-written snapshot. Load rebuilds the full snapshot at
  process start.

WAL MODE:
  The database is opened with WAL (Write-Ahead Logging): readers don't
  block the single writer and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/leave.db")   // ":memory:" for tests
  defer store.Close()

SEE ALSO:
  - leave/store.go: the SnapshotStore contract
  - store/jsonfile: the flat-file alternative
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/lumahr/leave-engine/leave"
)

// Store implements leave.SnapshotStore on SQLite.
type Store struct {
	db *sql.DB
}

var _ leave.SnapshotStore = (*Store)(nil)

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id           INTEGER PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL UNIQUE,
		department   TEXT NOT NULL,
		joining_date TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_types (
		id           INTEGER PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL,
		days_allowed INTEGER NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_balances (
		id            INTEGER PRIMARY KEY,
		employee_id   INTEGER NOT NULL,
		leave_type_id INTEGER NOT NULL,
		balance       TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		UNIQUE(employee_id, leave_type_id)
	);

	CREATE INDEX IF NOT EXISTS idx_balances_employee
		ON leave_balances(employee_id);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id            INTEGER PRIMARY KEY,
		employee_id   INTEGER NOT NULL,
		leave_type_id INTEGER NOT NULL,
		start_date    TEXT NOT NULL,
		end_date      TEXT NOT NULL,
		reason        TEXT NOT NULL,
		status        TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAD
// =============================================================================

// Load rebuilds a snapshot from the database. Returns (nil, nil) when every
// table is empty, meaning nothing has been persisted yet.
func (s *Store) Load(ctx context.Context) (*leave.Snapshot, error) {
	snap := &leave.Snapshot{}

	var err error
	if snap.Employees, err = s.loadEmployees(ctx); err != nil {
		return nil, err
	}
	if snap.LeaveTypes, err = s.loadLeaveTypes(ctx); err != nil {
		return nil, err
	}
	if snap.LeaveBalances, err = s.loadBalances(ctx); err != nil {
		return nil, err
	}
	if snap.LeaveRequests, err = s.loadRequests(ctx); err != nil {
		return nil, err
	}

	if len(snap.Employees) == 0 && len(snap.LeaveTypes) == 0 &&
		len(snap.LeaveBalances) == 0 && len(snap.LeaveRequests) == 0 {
		return nil, nil
	}
	return snap, nil
}

func (s *Store) loadEmployees(ctx context.Context) ([]leave.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, department, joining_date, created_at, updated_at
		 FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var out []leave.Employee
	for rows.Next() {
		var (
			e                         leave.Employee
			joining, created, updated string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &joining, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		if e.JoiningDate, err = leave.ParseDate(joining); err != nil {
			return nil, err
		}
		if e.CreatedAt, e.UpdatedAt, err = parseTimestamps(created, updated); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) loadLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, days_allowed, created_at, updated_at
		 FROM leave_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query leave types: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveType
	for rows.Next() {
		var (
			lt               leave.LeaveType
			created, updated string
		)
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.Description, &lt.DaysAllowed, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan leave type: %w", err)
		}
		if lt.CreatedAt, lt.UpdatedAt, err = parseTimestamps(created, updated); err != nil {
			return nil, err
		}
		out = append(out, lt)
	}
	return out, rows.Err()
}

func (s *Store) loadBalances(ctx context.Context) ([]leave.LeaveBalance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, leave_type_id, balance, created_at, updated_at
		 FROM leave_balances ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query balances: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveBalance
	for rows.Next() {
		var (
			b                         leave.LeaveBalance
			balance, created, updated string
		)
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.LeaveTypeID, &balance, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		if b.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parse balance %q: %w", balance, err)
		}
		if b.CreatedAt, b.UpdatedAt, err = parseTimestamps(created, updated); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) loadRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, leave_type_id, start_date, end_date, reason, status, created_at, updated_at
		 FROM leave_requests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveRequest
	for rows.Next() {
		var (
			r                            leave.LeaveRequest
			start, end, created, updated string
		)
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.LeaveTypeID, &start, &end, &r.Reason, &r.Status, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		if r.StartDate, err = leave.ParseDate(start); err != nil {
			return nil, err
		}
		if r.EndDate, err = leave.ParseDate(end); err != nil {
			return nil, err
		}
		if r.CreatedAt, r.UpdatedAt, err = parseTimestamps(created, updated); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// =============================================================================
// SAVE
// =============================================================================

// Save replaces the persisted snapshot atomically.
func (s *Store) Save(ctx context.Context, snap *leave.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"employees", "leave_types", "leave_balances", "leave_requests"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, e := range snap.Employees {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO employees (id, name, email, department, joining_date, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			int(e.ID), e.Name, e.Email, e.Department, e.JoiningDate.String(),
			formatTimestamp(e.CreatedAt), formatTimestamp(e.UpdatedAt)); err != nil {
			return fmt.Errorf("insert employee %d: %w", int(e.ID), err)
		}
	}

	for _, lt := range snap.LeaveTypes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leave_types (id, name, description, days_allowed, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			int(lt.ID), lt.Name, lt.Description, lt.DaysAllowed,
			formatTimestamp(lt.CreatedAt), formatTimestamp(lt.UpdatedAt)); err != nil {
			return fmt.Errorf("insert leave type %d: %w", int(lt.ID), err)
		}
	}

	for _, b := range snap.LeaveBalances {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leave_balances (id, employee_id, leave_type_id, balance, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			int(b.ID), int(b.EmployeeID), int(b.LeaveTypeID), b.Balance.String(),
			formatTimestamp(b.CreatedAt), formatTimestamp(b.UpdatedAt)); err != nil {
			return fmt.Errorf("insert balance %d: %w", int(b.ID), err)
		}
	}

	for _, r := range snap.LeaveRequests {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, reason, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			int(r.ID), int(r.EmployeeID), int(r.LeaveTypeID),
			r.StartDate.String(), r.EndDate.String(), r.Reason, string(r.Status),
			formatTimestamp(r.CreatedAt), formatTimestamp(r.UpdatedAt)); err != nil {
			return fmt.Errorf("insert request %d: %w", int(r.ID), err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// TIMESTAMP HELPERS
// =============================================================================

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamps(created, updated string) (time.Time, time.Time, error) {
	c, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	u, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse updated_at %q: %w", updated, err)
	}
	return c, u, nil
}
