package report

import (
	"errors"

	"github.com/matrusri/standup/core"
)

var (
	// errors
	ErrNotFound = errors.New("report not found")
)

type (
	// Store is the reports table. Every call re-reads the backing CSV
	// file and mutating calls rewrite it whole; nothing is cached in
	// between, so reads are always fresh.
	Store interface {
		Initialize() error
		// Append stamps Timestamp/Date and writes r as the last row.
		Append(r Report) error
		Load() ([]Report, error)
		// ExistsForIdentityToday matches the username case-insensitively
		// against rows whose Date equals today. A malformed Date never
		// matches (fail-open).
		ExistsForIdentityToday(username string) (bool, error)
		// UpdateComment sets the Comment of the row(s) whose Timestamp
		// exactly equals key; silent no-op when nothing matches.
		UpdateComment(key, comment string) error
		Clear() error
	}

	Service struct {
		store Store
		clock core.Clock
	}
)

func NewService(store Store, clock core.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// Submit appends a new report. It deliberately does not re-run the
// daily-submission gate: HasSubmittedToday is advisory and the caller
// owns the check-then-append sequence (which is not atomic anyway).
func (svc *Service) Submit(nr NewReport) error {
	return svc.store.Append(Report{
		Team:     nr.Team,
		Username: nr.Username,
		Body:     nr.Body,
	})
}

// HasSubmittedToday is the one-report-per-day gate for the form UI.
func (svc *Service) HasSubmittedToday(username string) (bool, error) {
	return svc.store.ExistsForIdentityToday(core.CleanString(username))
}

func (svc *Service) QueryAll() ([]Report, error) {
	return svc.store.Load()
}

// Comment sets the admin comment on the report keyed by timestamp.
// A miss is a silent no-op, mirroring the store contract.
func (svc *Service) Comment(timestamp, comment string) error {
	return svc.store.UpdateComment(timestamp, core.CleanString(comment))
}

// Clear irreversibly truncates the table to its header.
func (svc *Service) Clear() error {
	return svc.store.Clear()
}

// TodayStats counts today's submissions. Rows whose Date does not parse
// are skipped rather than failing the whole call, so the count can
// under-report on bad data.
func (svc *Service) TodayStats() (Stats, error) {
	reports, err := svc.store.Load()
	if err != nil {
		return Stats{}, err
	}

	today := svc.clock.Now().Format(core.DateLayout)
	stats := Stats{Date: today, Reports: []Report{}}
	for _, r := range reports {
		if r.Date == today {
			stats.Count++
			stats.Reports = append(stats.Reports, r)
		}
	}
	return stats, nil
}
