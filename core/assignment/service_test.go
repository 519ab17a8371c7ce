package assignment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	dummydb "github.com/matrusri/standup/storage/dummy"
)

func newTestService(t *testing.T) *assignment.Service {
	t.Helper()

	clock := &core.FixedClock{Time: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	db, err := dummydb.Open(clock)
	require.NoError(t, err)
	return assignment.NewService(dummydb.NewAssignmentStore(db))
}

func TestAssignmentService_AssignAndQuery(t *testing.T) {
	svc := newTestService(t)

	err := svc.Assign(assignment.NewAssignment{AssignedBy: "techlead", Assignee: "alice", Task: "fix the build"})
	require.NoError(t, err)

	all, err := svc.QueryAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2024-01-01 09:00:00", all[0].Timestamp)
	assert.Equal(t, "alice", all[0].Assignee)
	assert.Equal(t, "fix the build", all[0].Task)
}

func TestAssignmentService_QueryForAssignee(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Assign(assignment.NewAssignment{AssignedBy: "techlead", Assignee: "alice", Task: "fix the build"}))
	require.NoError(t, svc.Assign(assignment.NewAssignment{AssignedBy: "admin", Assignee: "bob", Task: "write docs"}))
	require.NoError(t, svc.Assign(assignment.NewAssignment{AssignedBy: "techlead", Assignee: "Alice", Task: "review PRs"}))

	matches, err := svc.QueryForAssignee("  ALICE ")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "fix the build", matches[0].Task)
	assert.Equal(t, "review PRs", matches[1].Task)

	matches, err = svc.QueryForAssignee("carol")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNewAssignmentValidate(t *testing.T) {
	na := assignment.NewAssignment{AssignedBy: " techlead ", Assignee: "alice", Task: " fix the build "}
	require.NoError(t, na.Validate())
	assert.Equal(t, "techlead", na.AssignedBy)
	assert.Equal(t, "fix the build", na.Task)

	assert.Error(t, (&assignment.NewAssignment{Assignee: "alice", Task: "x"}).Validate())
	assert.Error(t, (&assignment.NewAssignment{AssignedBy: "techlead", Task: "x"}).Validate())
	assert.Error(t, (&assignment.NewAssignment{AssignedBy: "techlead", Assignee: "alice"}).Validate())
}
