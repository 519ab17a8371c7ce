package dummydb

import (
	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
)

type assignmentStore struct {
	db    *assignmentTable
	clock core.Clock
}

var _ assignment.Store = (*assignmentStore)(nil) // interface compliance check

func NewAssignmentStore(db *DB) assignment.Store {
	return &assignmentStore{db: db.assigns, clock: db.clock}
}

func (s *assignmentStore) Initialize() error { return nil }

func (s *assignmentStore) Append(a assignment.Assignment) error {
	s.db.Lock()
	defer s.db.Unlock()

	a.Timestamp = s.clock.Now().Format(core.TimestampLayout)
	s.db.rows = append(s.db.rows, a)
	return nil
}

func (s *assignmentStore) Load() ([]assignment.Assignment, error) {
	s.db.RLock()
	defer s.db.RUnlock()
	return append([]assignment.Assignment(nil), s.db.rows...), nil
}
