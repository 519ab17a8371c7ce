package dummydb

import (
	"sync"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	"github.com/matrusri/standup/core/doubt"
	"github.com/matrusri/standup/core/report"
)

// DB is an in-memory stand-in for the CSV tables. Test use only.
type DB struct {
	clock core.Clock

	reports *reportTable
	doubts  *doubtTable
	assigns *assignmentTable
}

type (
	reportTable struct {
		sync.RWMutex
		rows []report.Report
	}

	doubtTable struct {
		sync.RWMutex
		active   []doubt.Doubt
		resolved []doubt.Doubt
	}

	assignmentTable struct {
		sync.RWMutex
		rows []assignment.Assignment
	}
)

func Open(clock core.Clock) (*DB, error) {
	db := &DB{
		clock:   clock,
		reports: new(reportTable),
		doubts:  new(doubtTable),
		assigns: new(assignmentTable),
	}
	return db, nil
}
