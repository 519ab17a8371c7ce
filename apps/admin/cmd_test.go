package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	"github.com/matrusri/standup/core/doubt"
	"github.com/matrusri/standup/core/report"
	dummydb "github.com/matrusri/standup/storage/dummy"
)

const (
	testAdminSecret    = "test-admin-secret"
	testTechLeadSecret = "test-lead-secret"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	core.Conf.AdminSecret = testAdminSecret
	core.Conf.TechLeadSecret = testTechLeadSecret
	core.Conf.TechLeadEmails = nil

	clock := &core.FixedClock{Time: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	db, err := dummydb.Open(clock)
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	return &commandLine{
		reportSvc:     report.NewService(dummydb.NewReportStore(db), clock),
		doubtSvc:      doubt.NewService(dummydb.NewDoubtStore(db), noopMailer{}),
		assignmentSvc: assignment.NewService(dummydb.NewAssignmentStore(db)),
	}
}

type noopMailer struct{}

func (noopMailer) SendMessages(...*core.EmailMessage) {}

func mockSecret(secret string) {
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(secret), nil }
}

func run(cli *commandLine, args ...string) error {
	cmd := cli.rootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// captureStdout runs fn with os.Stdout redirected to a buffer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe(): %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	_ = w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("io.Copy(): %v", err)
	}
	return buf.String()
}

func Test_commandLine_export(t *testing.T) {
	cli := setup(t)

	if err := cli.reportSvc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"}); err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	out := captureStdout(t, func() {
		if err := run(cli, "export"); err != nil {
			t.Errorf("run() error = %v", err)
		}
	})

	want := "Timestamp,Date,Team,GitLab Username,Standup Report,Comment\n" +
		"2024-01-01 09:00:00,2024-01-01,Web,alice,did things,\n"
	if out != want {
		t.Errorf("export = %q; want %q", out, want)
	}
}

func Test_commandLine_stats(t *testing.T) {
	cli := setup(t)

	if err := cli.reportSvc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"}); err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	out := captureStdout(t, func() {
		if err := run(cli, "stats"); err != nil {
			t.Errorf("run() error = %v", err)
		}
	})

	want := "Reports submitted on 2024-01-01: 1\n  - alice at 2024-01-01 09:00:00\n"
	if out != want {
		t.Errorf("stats = %q; want %q", out, want)
	}
}

func Test_commandLine_clear(t *testing.T) {
	cli := setup(t)

	if err := cli.reportSvc.Submit(report.NewReport{Username: "alice", Team: "Web", Body: "did things"}); err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		secret  string
		wantErr error
	}{
		{name: "bad secret", args: []string{"clear", "reports"}, secret: "nope", wantErr: errNotAuthorized},
		{name: "techlead secret not enough", args: []string{"clear", "reports"}, secret: testTechLeadSecret, wantErr: errNotAuthorized},
		{name: "reports", args: []string{"clear", "reports"}, secret: testAdminSecret},
		{name: "doubts", args: []string{"clear", "doubts"}, secret: testAdminSecret},
		{name: "resolved", args: []string{"clear", "resolved"}, secret: testAdminSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSecret(tt.secret)
			if err := run(cli, tt.args...); err != tt.wantErr {
				t.Errorf("run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	reports, err := cli.reportSvc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll(): %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("len(reports) = %d; want 0", len(reports))
	}

	if err := run(cli, "clear", "lol"); err == nil {
		t.Error("run() expected an invalid argument error")
	}
}

func Test_commandLine_resolve(t *testing.T) {
	cli := setup(t)

	if err := cli.doubtSvc.Submit(doubt.NewDoubt{Name: "Ravi", Phone: "9876543210", Body: "How do I rebase?"}); err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	mockSecret(testTechLeadSecret)
	out := captureStdout(t, func() {
		if err := run(cli, "resolve", "2024-01-01 09:00:00"); err != nil {
			t.Errorf("run() error = %v", err)
		}
	})
	// out starts with the secret prompt
	if !strings.HasSuffix(out, "Doubt resolved.\n") {
		t.Errorf("resolve = %q", out)
	}

	resolved, err := cli.doubtSvc.Query(doubt.StatusResolved)
	if err != nil {
		t.Fatalf("Query(): %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("len(resolved) = %d; want 1", len(resolved))
	}

	// already moved
	if err := run(cli, "resolve", "2024-01-01 09:00:00"); err != doubt.ErrNotFound {
		t.Errorf("run() error = %v, wantErr %v", err, doubt.ErrNotFound)
	}

	// admin secret works on techlead commands too
	mockSecret(testAdminSecret)
	if err := cli.doubtSvc.Submit(doubt.NewDoubt{Name: "Mina", Phone: "9876500000", Body: "CI is red"}); err != nil {
		t.Fatalf("Submit(): %v", err)
	}
	_ = captureStdout(t, func() {
		if err := run(cli, "resolve", "2024-01-01 09:00:00"); err != nil {
			t.Errorf("run() error = %v", err)
		}
	})
}

func Test_commandLine_assign(t *testing.T) {
	cli := setup(t)
	mockSecret(testTechLeadSecret)

	if err := run(cli, "assign", "--to", "alice", "--task", "fix the build"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if err := run(cli, "assign", "--by", "sam", "--to", "bob", "--task", "write docs"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	all, err := cli.assignmentSvc.QueryAll()
	if err != nil {
		t.Fatalf("QueryAll(): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d; want 2", len(all))
	}
	if all[0].AssignedBy != "techlead" || all[0].Assignee != "alice" {
		t.Errorf("unexpected first assignment: %+v", all[0])
	}
	if all[1].AssignedBy != "sam" {
		t.Errorf("unexpected second assignment: %+v", all[1])
	}

	// missing required flags
	if err := run(cli, "assign", "--to", "alice"); err == nil {
		t.Error("run() expected a missing flag error")
	}
}
