package csvtable

import (
	"path/filepath"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/doubt"
)

const (
	doubtsFile         = "doubts.csv"
	resolvedDoubtsFile = "resolved_doubts.csv"
)

const (
	colName  = "Name"
	colPhone = "Phone"
	colDoubt = "Doubt"
)

// doubtSchema is shared by the active and resolved tables so a resolve
// moves rows verbatim. The original shape had no Comment column.
var doubtSchema = Schema{
	{Name: ColTimestamp},
	{Name: colName},
	{Name: colPhone},
	{Name: colDoubt},
	{Name: colComment},
}

type DoubtStore struct {
	active   *Table
	resolved *Table
}

var _ doubt.Store = (*DoubtStore)(nil) // interface compliance check

func NewDoubtStore(dataDir string, clock core.Clock) *DoubtStore {
	return &DoubtStore{
		active:   New(filepath.Join(dataDir, doubtsFile), doubtSchema, clock),
		resolved: New(filepath.Join(dataDir, resolvedDoubtsFile), doubtSchema, clock),
	}
}

func (s *DoubtStore) tableFor(status doubt.Status) *Table {
	if status == doubt.StatusResolved {
		return s.resolved
	}
	return s.active
}

func (s *DoubtStore) Initialize() error {
	if err := s.active.Initialize(); err != nil {
		return err
	}
	return s.resolved.Initialize()
}

func (s *DoubtStore) Append(d doubt.Doubt) error {
	return s.active.Append(map[string]string{
		colName:    d.Name,
		colPhone:   d.Phone,
		colDoubt:   d.Body,
		colComment: d.Comment,
	})
}

func (s *DoubtStore) Load(status doubt.Status) ([]doubt.Doubt, error) {
	records, err := s.tableFor(status).Load()
	if err != nil {
		return nil, err
	}

	doubts := make([]doubt.Doubt, len(records))
	for i, rec := range records {
		doubts[i] = doubt.Doubt{
			Timestamp: rec.Get(ColTimestamp),
			Name:      rec.Get(colName),
			Phone:     rec.Get(colPhone),
			Body:      rec.Get(colDoubt),
			Comment:   rec.Get(colComment),
		}
	}
	return doubts, nil
}

func (s *DoubtStore) UpdateComment(status doubt.Status, key, comment string) error {
	return s.tableFor(status).UpdateField(key, colComment, comment)
}

func (s *DoubtStore) MoveToResolved(key string) (bool, error) {
	return s.active.MoveRecord(s.resolved, key)
}

func (s *DoubtStore) Clear(status doubt.Status) error {
	return s.tableFor(status).Clear()
}
