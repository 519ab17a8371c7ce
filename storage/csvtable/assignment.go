package csvtable

import (
	"path/filepath"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
)

const assignmentsFile = "assignments.csv"

const (
	colAssignedBy = "AssignedBy"
	colAssignee   = "Assignee"
	colTask       = "Task"
)

var assignmentSchema = Schema{
	{Name: ColTimestamp},
	{Name: colAssignedBy},
	{Name: colAssignee},
	{Name: colTask},
}

type AssignmentStore struct {
	table *Table
}

var _ assignment.Store = (*AssignmentStore)(nil) // interface compliance check

func NewAssignmentStore(dataDir string, clock core.Clock) *AssignmentStore {
	return &AssignmentStore{table: New(filepath.Join(dataDir, assignmentsFile), assignmentSchema, clock)}
}

func (s *AssignmentStore) Initialize() error { return s.table.Initialize() }

func (s *AssignmentStore) Append(a assignment.Assignment) error {
	return s.table.Append(map[string]string{
		colAssignedBy: a.AssignedBy,
		colAssignee:   a.Assignee,
		colTask:       a.Task,
	})
}

func (s *AssignmentStore) Load() ([]assignment.Assignment, error) {
	records, err := s.table.Load()
	if err != nil {
		return nil, err
	}

	assignments := make([]assignment.Assignment, len(records))
	for i, rec := range records {
		assignments[i] = assignment.Assignment{
			Timestamp:  rec.Get(ColTimestamp),
			AssignedBy: rec.Get(colAssignedBy),
			Assignee:   rec.Get(colAssignee),
			Task:       rec.Get(colTask),
		}
	}
	return assignments, nil
}
