package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matrusri/standup/core"
	"github.com/matrusri/standup/core/assignment"
	"github.com/matrusri/standup/core/doubt"
	"github.com/matrusri/standup/core/report"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNotAuthorized = errors.New("not authorized")
)

type commandLine struct {
	reportSvc     *report.Service
	doubtSvc      *doubt.Service
	assignmentSvc *assignment.Service
}

func (cli *commandLine) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "standup-admin",
		Short:         "Moderate standup reports, doubts and task assignments",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(
		cli.exportCommand(),
		cli.statsCommand(),
		cli.clearCommand(),
		cli.resolveCommand(),
		cli.assignCommand(),
	)
	return cmd
}

// authorize prompts for the role's secret; destructive commands run
// locally but still gate on the same configured secrets as the API.
func (cli *commandLine) authorize(role core.Role) error {
	fmt.Printf("Enter %s secret:", role)
	secret, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return err
	}
	if !core.Authorize(core.Conf.RoleSecrets(), role, string(secret)) {
		return errNotAuthorized
	}
	return nil
}

func (cli *commandLine) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Dump all standup reports as CSV on stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := cli.reportSvc.QueryAll()
			if err != nil {
				return err
			}
			w := csv.NewWriter(os.Stdout)
			_ = w.Write([]string{"Timestamp", "Date", "Team", "GitLab Username", "Standup Report", "Comment"})
			for _, r := range reports {
				_ = w.Write([]string{r.Timestamp, r.Date, r.Team, r.Username, r.Body, r.Comment})
			}
			w.Flush()
			return w.Error()
		},
	}
}

func (cli *commandLine) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's submission stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := cli.reportSvc.TodayStats()
			if err != nil {
				return err
			}
			fmt.Printf("Reports submitted on %s: %d\n", stats.Date, stats.Count)
			for _, r := range stats.Reports {
				fmt.Printf("  - %s at %s\n", r.Username, r.Timestamp)
			}
			return nil
		},
	}
}

func (cli *commandLine) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "clear {reports|doubts|resolved}",
		Short:     "Irreversibly truncate a table to its header",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"reports", "doubts", "resolved"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.authorize(core.RoleAdmin); err != nil {
				return err
			}
			switch args[0] {
			case "reports":
				return cli.reportSvc.Clear()
			case "doubts":
				return cli.doubtSvc.Clear(doubt.StatusActive)
			default:
				return cli.doubtSvc.Clear(doubt.StatusResolved)
			}
		},
	}
}

func (cli *commandLine) resolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TIMESTAMP",
		Short: "Move a doubt from the active to the resolved table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.authorize(core.RoleTechLead); err != nil {
				return err
			}
			if err := cli.doubtSvc.Resolve(args[0]); err != nil {
				return err
			}
			fmt.Println("Doubt resolved.")
			return nil
		},
	}
}

func (cli *commandLine) assignCommand() *cobra.Command {
	var by, to, task string
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a task to an intern",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.authorize(core.RoleTechLead); err != nil {
				return err
			}
			data := assignment.NewAssignment{AssignedBy: by, Assignee: to, Task: task}
			if err := data.Validate(); err != nil {
				return err
			}
			return cli.assignmentSvc.Assign(data)
		},
	}
	cmd.Flags().StringVar(&by, "by", string(core.RoleTechLead), "who assigns the task")
	cmd.Flags().StringVar(&to, "to", "", "the intern receiving the task")
	cmd.Flags().StringVar(&task, "task", "", "the task description")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}
