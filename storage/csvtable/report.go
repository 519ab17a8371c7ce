package csvtable

import (
	"path/filepath"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/report"
)

const reportsFile = "standup_reports.csv"

// Column names date back to the first version of the tool and are kept
// for compatibility with existing files.
const (
	colTeam     = "Team"
	colUsername = "GitLab Username"
	colReport   = "Standup Report"
	colComment  = "Comment"
)

// reportSchema is the declared current shape; Date, Team and Comment
// were added over the tool's lifetime and get backfilled on load.
var reportSchema = Schema{
	{Name: ColTimestamp},
	{Name: ColDate, BackfillFromTimestamp: true},
	{Name: colTeam},
	{Name: colUsername},
	{Name: colReport},
	{Name: colComment},
}

type ReportStore struct {
	table *Table
}

var _ report.Store = (*ReportStore)(nil) // interface compliance check

func NewReportStore(dataDir string, clock core.Clock) *ReportStore {
	return &ReportStore{table: New(filepath.Join(dataDir, reportsFile), reportSchema, clock)}
}

func (s *ReportStore) Initialize() error { return s.table.Initialize() }

func (s *ReportStore) Append(r report.Report) error {
	return s.table.Append(map[string]string{
		colTeam:     r.Team,
		colUsername: r.Username,
		colReport:   r.Body,
		colComment:  r.Comment,
	})
}

func (s *ReportStore) Load() ([]report.Report, error) {
	records, err := s.table.Load()
	if err != nil {
		return nil, err
	}

	reports := make([]report.Report, len(records))
	for i, rec := range records {
		reports[i] = report.Report{
			Timestamp: rec.Get(ColTimestamp),
			Date:      rec.Get(ColDate),
			Team:      rec.Get(colTeam),
			Username:  rec.Get(colUsername),
			Body:      rec.Get(colReport),
			Comment:   rec.Get(colComment),
		}
	}
	return reports, nil
}

func (s *ReportStore) ExistsForIdentityToday(username string) (bool, error) {
	return s.table.ExistsForIdentityToday(colUsername, username)
}

func (s *ReportStore) UpdateComment(key, comment string) error {
	return s.table.UpdateField(key, colComment, comment)
}

func (s *ReportStore) Clear() error { return s.table.Clear() }
