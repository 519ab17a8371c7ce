package dummydb

import (
	"strings"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/report"
)

type reportStore struct {
	db    *reportTable
	clock core.Clock
}

var _ report.Store = (*reportStore)(nil) // interface compliance check

func NewReportStore(db *DB) report.Store {
	return &reportStore{db: db.reports, clock: db.clock}
}

func (s *reportStore) Initialize() error { return nil }

func (s *reportStore) Append(r report.Report) error {
	s.db.Lock()
	defer s.db.Unlock()

	now := s.clock.Now()
	r.Timestamp = now.Format(core.TimestampLayout)
	r.Date = now.Format(core.DateLayout)
	s.db.rows = append(s.db.rows, r)
	return nil
}

func (s *reportStore) Load() ([]report.Report, error) {
	s.db.RLock()
	defer s.db.RUnlock()
	return append([]report.Report(nil), s.db.rows...), nil
}

func (s *reportStore) ExistsForIdentityToday(username string) (bool, error) {
	s.db.RLock()
	defer s.db.RUnlock()

	username = strings.ToLower(strings.TrimSpace(username))
	today := s.clock.Now().Format(core.DateLayout)
	for _, r := range s.db.rows {
		if strings.ToLower(strings.TrimSpace(r.Username)) == username && r.Date == today {
			return true, nil
		}
	}
	return false, nil
}

func (s *reportStore) UpdateComment(key, comment string) error {
	s.db.Lock()
	defer s.db.Unlock()

	for i := range s.db.rows {
		if s.db.rows[i].Timestamp == key {
			s.db.rows[i].Comment = comment
		}
	}
	return nil
}

func (s *reportStore) Clear() error {
	s.db.Lock()
	defer s.db.Unlock()
	s.db.rows = nil
	return nil
}
