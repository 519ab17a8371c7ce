package main

import (
	"log"
	"os"

	"github.com/matrusri/standup/apps/api/echo"
	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	"github.com/matrusri/standup/core/doubt"
	"github.com/matrusri/standup/core/report"
	emailsvc "github.com/matrusri/standup/services/email"
	logsvc "github.com/matrusri/standup/services/logger"
	"github.com/matrusri/standup/storage/csvtable"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lshortfile)

	// set up services
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	// set up CSV tables
	clock := core.NewClock()
	reportStore := csvtable.NewReportStore(core.Conf.DataDir, clock)
	doubtStore := csvtable.NewDoubtStore(core.Conf.DataDir, clock)
	assignmentStore := csvtable.NewAssignmentStore(core.Conf.DataDir, clock)
	for _, init := range []func() error{
		reportStore.Initialize,
		doubtStore.Initialize,
		assignmentStore.Initialize,
	} {
		errAndDie(init())
	}

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Address:       core.Conf.Server.Addr,
			Logger:        logger,
			ReportSvc:     report.NewService(reportStore, clock),
			DoubtSvc:      doubt.NewService(doubtStore, mailSvc),
			AssignmentSvc: assignment.NewService(assignmentStore),
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
