package searchsvc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrusri/standup/core/report"
	searchsvc "github.com/matrusri/standup/services/search"
)

func sampleReports() []report.Report {
	return []report.Report{
		{Timestamp: "2024-01-01 09:00:00", Date: "2024-01-01", Team: "Web", Username: "alice", Body: "fixed the login page styling"},
		{Timestamp: "2024-01-01 09:05:00", Date: "2024-01-01", Team: "Data", Username: "bob", Body: "trained the churn model, blocked on GPU quota"},
		{Timestamp: "2024-01-01 09:10:00", Date: "2024-01-01", Team: "Mobile", Username: "carol", Body: "shipped the onboarding flow", Comment: "nice work"},
	}
}

func TestSearchReports(t *testing.T) {
	matches, err := searchsvc.SearchReports(sampleReports(), "login", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "alice", matches[0].Username)
}

func TestSearchReports_MatchesAnyField(t *testing.T) {
	// username
	matches, err := searchsvc.SearchReports(sampleReports(), "bob", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bob", matches[0].Username)

	// admin comment
	matches, err = searchsvc.SearchReports(sampleReports(), "nice", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "carol", matches[0].Username)
}

func TestSearchReports_NoMatch(t *testing.T) {
	matches, err := searchsvc.SearchReports(sampleReports(), "kubernetes", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchReports_Limit(t *testing.T) {
	// "page flow" matches both alice and carol; the limit keeps the top hit
	matches, err := searchsvc.SearchReports(sampleReports(), "page flow", 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSearchReports_EmptyInput(t *testing.T) {
	matches, err := searchsvc.SearchReports(nil, "anything", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
