package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/report"
	dummydb "github.com/matrusri/standup/storage/dummy"
)

func newTestService(t *testing.T) (*report.Service, *core.FixedClock) {
	t.Helper()

	clock := &core.FixedClock{Time: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	db, err := dummydb.Open(clock)
	require.NoError(t, err)
	return report.NewService(dummydb.NewReportStore(db), clock), clock
}

func TestReportService_SubmitAndQuery(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"})
	require.NoError(t, err)

	reports, err := svc.QueryAll()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "2024-01-01 09:00:00", reports[0].Timestamp)
	assert.Equal(t, "2024-01-01", reports[0].Date)
	assert.Equal(t, "alice", reports[0].Username)
}

func TestReportService_HasSubmittedToday(t *testing.T) {
	svc, clock := newTestService(t)

	require.NoError(t, svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"}))

	ok, err := svc.HasSubmittedToday("alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasSubmittedToday("  ALICE ")
	require.NoError(t, err)
	assert.True(t, ok, "gate matches case-insensitively and trimmed")

	ok, err = svc.HasSubmittedToday("bob")
	require.NoError(t, err)
	assert.False(t, ok)

	// the gate resets at midnight
	clock.Advance(24 * time.Hour)
	ok, err = svc.HasSubmittedToday("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportService_SubmitDoesNotEnforceGate(t *testing.T) {
	svc, _ := newTestService(t)

	// the gate is advisory; the service appends regardless
	require.NoError(t, svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "first"}))
	require.NoError(t, svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "second"}))

	reports, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestReportService_Comment(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"}))

	require.NoError(t, svc.Comment("2024-01-01 09:00:00", "  nice work  "))
	reports, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Equal(t, "nice work", reports[0].Comment)

	// a miss changes nothing
	require.NoError(t, svc.Comment("2024-01-01 10:00:00", "lost"))
	reports, err = svc.QueryAll()
	require.NoError(t, err)
	assert.Equal(t, "nice work", reports[0].Comment)
}

func TestReportService_TodayStats(t *testing.T) {
	svc, clock := newTestService(t)

	require.NoError(t, svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "day one"}))
	clock.Advance(24 * time.Hour)
	require.NoError(t, svc.Submit(report.NewReport{Username: "bob", Team: "Data", Body: "day two"}))
	require.NoError(t, svc.Submit(report.NewReport{Username: "carol", Team: "Mobile", Body: "day two too"}))

	stats, err := svc.TodayStats()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", stats.Date)
	assert.Equal(t, 2, stats.Count)
	require.Len(t, stats.Reports, 2)
	assert.Equal(t, "bob", stats.Reports[0].Username)
}

func TestReportService_Clear(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"}))
	require.NoError(t, svc.Clear())

	reports, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestNewReportValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      report.NewReport
		wantErr bool
	}{
		{"valid", report.NewReport{Username: "alice", Team: "Web", Body: "did things"}, false},
		{"no team is fine", report.NewReport{Username: "alice", Body: "did things"}, false},
		{"unknown team", report.NewReport{Username: "alice", Team: "Ops", Body: "did things"}, true},
		{"missing username", report.NewReport{Team: "Web", Body: "did things"}, true},
		{"missing body", report.NewReport{Username: "alice", Team: "Web"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewReportValidateCleans(t *testing.T) {
	nr := report.NewReport{Username: "  alice ", Team: "Web", Body: "  did things  "}
	require.NoError(t, nr.Validate())
	assert.Equal(t, "alice", nr.Username)
	assert.Equal(t, "did things", nr.Body)
}
