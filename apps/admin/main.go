package main

import (
	"log"
	"os"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	"github.com/matrusri/standup/core/doubt"
	"github.com/matrusri/standup/core/report"
	emailsvc "github.com/matrusri/standup/services/email"
	"github.com/matrusri/standup/storage/csvtable"
)

func main() {
	clock := core.NewClock()
	reportStore := csvtable.NewReportStore(core.Conf.DataDir, clock)
	doubtStore := csvtable.NewDoubtStore(core.Conf.DataDir, clock)
	assignmentStore := csvtable.NewAssignmentStore(core.Conf.DataDir, clock)
	for _, init := range []func() error{
		reportStore.Initialize,
		doubtStore.Initialize,
		assignmentStore.Initialize,
	} {
		if err := init(); err != nil {
			log.Fatal(err)
		}
	}

	cli := &commandLine{
		reportSvc:     report.NewService(reportStore, clock),
		doubtSvc:      doubt.NewService(doubtStore, emailsvc.NewConsoleService(true /* disableOutput */)),
		assignmentSvc: assignment.NewService(assignmentStore),
	}
	if err := cli.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
