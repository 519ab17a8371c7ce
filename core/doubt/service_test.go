package doubt_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/doubt"
	dummydb "github.com/matrusri/standup/storage/dummy"
)

// fakeMailer captures messages synchronously so tests can assert on them
// without racing the console service's goroutines.
type fakeMailer struct {
	mu   sync.Mutex
	sent []core.EmailMessage
}

func (m *fakeMailer) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range messages {
		m.sent = append(m.sent, *msg)
	}
}

func (m *fakeMailer) messages() []core.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.EmailMessage(nil), m.sent...)
}

func newTestService(t *testing.T) (*doubt.Service, *fakeMailer, *core.FixedClock) {
	t.Helper()

	clock := &core.FixedClock{Time: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	db, err := dummydb.Open(clock)
	require.NoError(t, err)
	mailer := new(fakeMailer)
	return doubt.NewService(dummydb.NewDoubtStore(db), mailer), mailer, clock
}

func TestDoubtService_SubmitNotifiesTechLeads(t *testing.T) {
	origEmails := core.Conf.TechLeadEmails
	core.Conf.TechLeadEmails = []string{"lead@example.com"}
	defer func() { core.Conf.TechLeadEmails = origEmails }()

	svc, mailer, _ := newTestService(t)

	err := svc.Submit(doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"})
	require.NoError(t, err)

	active, err := svc.Query(doubt.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2024-01-01 09:00:00", active[0].Timestamp)
	assert.Equal(t, "Ravi", active[0].Name)

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "lead@example.com", sent[0].To[0].Address)
	assert.Contains(t, sent[0].Subject, "Ravi")
	assert.Contains(t, sent[0].BodyStr, "How do I rebase?")
}

func TestDoubtService_SubmitWithoutTechLeadsSkipsEmail(t *testing.T) {
	origEmails := core.Conf.TechLeadEmails
	core.Conf.TechLeadEmails = nil
	defer func() { core.Conf.TechLeadEmails = origEmails }()

	svc, mailer, _ := newTestService(t)

	require.NoError(t, svc.Submit(doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"}))
	assert.Empty(t, mailer.messages())
}

func TestDoubtService_Resolve(t *testing.T) {
	svc, _, clock := newTestService(t)

	require.NoError(t, svc.Submit(doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"}))
	clock.Advance(time.Minute)
	require.NoError(t, svc.Submit(doubt.NewDoubt{Name: "Mina", Phone: "9876500000", Body: "CI is red"}))

	require.NoError(t, svc.Resolve("2024-01-01 09:00:00"))

	active, err := svc.Query(doubt.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Mina", active[0].Name)

	resolved, err := svc.Query(doubt.StatusResolved)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "Ravi", resolved[0].Name)

	// resolving again misses: the row is gone from the active table
	assert.Equal(t, doubt.ErrNotFound, svc.Resolve("2024-01-01 09:00:00"))
}

func TestDoubtService_Comment(t *testing.T) {
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Submit(doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"}))

	require.NoError(t, svc.Comment(doubt.StatusActive, "2024-01-01 09:00:00", " use git rebase -i "))
	active, err := svc.Query(doubt.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, "use git rebase -i", active[0].Comment)
	assert.True(t, active[0].HasComment())
}

func TestDoubtService_Clear(t *testing.T) {
	svc, _, _ := newTestService(t)

	require.NoError(t, svc.Submit(doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"}))
	require.NoError(t, svc.Resolve("2024-01-01 09:00:00"))
	require.NoError(t, svc.Submit(doubt.NewDoubt{Name: "Mina", Phone: "9876500000", Body: "CI is red"}))

	require.NoError(t, svc.Clear(doubt.StatusActive))
	active, err := svc.Query(doubt.StatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)

	// the resolved table is untouched
	resolved, err := svc.Query(doubt.StatusResolved)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestNewDoubtValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      doubt.NewDoubt
		wantErr bool
	}{
		{"valid", doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"}, false},
		{"valid with country code", doubt.NewDoubt{Name: "Ravi", Phone: "+91 98765 43210", Body: "help"}, false},
		{"missing name", doubt.NewDoubt{Phone: "9876543210", Body: "help"}, true},
		{"missing phone", doubt.NewDoubt{Name: "Ravi", Body: "help"}, true},
		{"bad phone", doubt.NewDoubt{Name: "Ravi", Phone: "not-a-number", Body: "help"}, true},
		{"missing body", doubt.NewDoubt{Name: "Ravi", Phone: "9876543210"}, true},
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
