package dummydb

import (
	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/doubt"
)

type doubtStore struct {
	db    *doubtTable
	clock core.Clock
}

var _ doubt.Store = (*doubtStore)(nil) // interface compliance check

func NewDoubtStore(db *DB) doubt.Store {
	return &doubtStore{db: db.doubts, clock: db.clock}
}

func (s *doubtStore) Initialize() error { return nil }

func (s *doubtStore) Append(d doubt.Doubt) error {
	s.db.Lock()
	defer s.db.Unlock()

	d.Timestamp = s.clock.Now().Format(core.TimestampLayout)
	s.db.active = append(s.db.active, d)
	return nil
}

func (s *doubtStore) rows(status doubt.Status) *[]doubt.Doubt {
	if status == doubt.StatusResolved {
		return &s.db.resolved
	}
	return &s.db.active
}

func (s *doubtStore) Load(status doubt.Status) ([]doubt.Doubt, error) {
	s.db.RLock()
	defer s.db.RUnlock()
	return append([]doubt.Doubt(nil), *s.rows(status)...), nil
}

func (s *doubtStore) UpdateComment(status doubt.Status, key, comment string) error {
	s.db.Lock()
	defer s.db.Unlock()

	rows := *s.rows(status)
	for i := range rows {
		if rows[i].Timestamp == key {
			rows[i].Comment = comment
		}
	}
	return nil
}

func (s *doubtStore) MoveToResolved(key string) (bool, error) {
	s.db.Lock()
	defer s.db.Unlock()

	for i, d := range s.db.active {
		if d.Timestamp == key {
			s.db.resolved = append(s.db.resolved, d)
			s.db.active = append(s.db.active[:i], s.db.active[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *doubtStore) Clear(status doubt.Status) error {
	s.db.Lock()
	defer s.db.Unlock()
	*s.rows(status) = nil
	return nil
}
