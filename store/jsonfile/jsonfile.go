/*
Package jsonfile persists snapshots as four flat JSON files, one array per
collection, matching the layout the frontend's original data/ directory
used:

	employees.json
	leaveTypes.json
	leaveBalances.json
	leaveRequests.json

Writes go through a temp file and rename so a crash mid-save never leaves a
truncated file behind. A missing file loads as an empty collection; when no
file exists at all, Load reports that nothing has been persisted yet.
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumahr/leave-engine/leave"
)

const (
	employeesFile  = "employees.json"
	leaveTypesFile = "leaveTypes.json"
	balancesFile   = "leaveBalances.json"
	requestsFile   = "leaveRequests.json"
)

// Store reads and writes snapshots under a single directory.
type Store struct {
	dir string
}

var _ leave.SnapshotStore = (*Store)(nil)

// New creates the data directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Load reads all four collections. Returns (nil, nil) when none of the
// files exist.
func (s *Store) Load(_ context.Context) (*leave.Snapshot, error) {
	snap := &leave.Snapshot{}
	found := false

	for _, part := range []struct {
		file string
		dest any
	}{
		{employeesFile, &snap.Employees},
		{leaveTypesFile, &snap.LeaveTypes},
		{balancesFile, &snap.LeaveBalances},
		{requestsFile, &snap.LeaveRequests},
	} {
		ok, err := s.readFile(part.file, part.dest)
		if err != nil {
			return nil, err
		}
		found = found || ok
	}

	if !found {
		return nil, nil
	}
	return snap, nil
}

// Save writes all four collections.
func (s *Store) Save(_ context.Context, snap *leave.Snapshot) error {
	for _, part := range []struct {
		file string
		data any
	}{
		{employeesFile, snap.Employees},
		{leaveTypesFile, snap.LeaveTypes},
		{balancesFile, snap.LeaveBalances},
		{requestsFile, snap.LeaveRequests},
	} {
		if err := s.writeFile(part.file, part.data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) readFile(name string, dest any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) writeFile(name string, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
