package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study schedule from a plan file or the demo data",
	Example: "  studyplan plan --file plan.yaml\n" +
		"  studyplan plan --demo --branch ece --explain\n" +
		"  studyplan plan --file plan.json --start 2025-01-06 --dry-run",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		demo, _ := cmd.Flags().GetBool("demo")
		branch, _ := cmd.Flags().GetString("branch")
		startRaw, _ := cmd.Flags().GetString("start")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		explain, _ := cmd.Flags().GetBool("explain")

		if (file == "") == !demo {
			return errors.New("use exactly one of --file or --demo")
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		var (
			student  planner.StudentProfile
			subjects []planner.Subject
		)
		if demo {
			student, subjects = catalog.Demo(rt.app.Now())
		} else {
			pf, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			if student, err = pf.Profile(); err != nil {
				return err
			}
			subjects = pf.PlannerSubjects()
		}
		if branch != "" {
			if _, ok := catalog.GetBranch(branch); !ok {
				return fmt.Errorf("unknown branch %q, see `studyplan templates`", branch)
			}
			student.Branch = branch
			subjects = catalog.ExpandBranch(branch)
		}

		start := rt.app.Now()
		if startRaw != "" {
			if start, err = parseDate("start", startRaw); err != nil {
				return err
			}
		}

		res, report, err := rt.app.Generate(cmd.Context(), student, subjects, start, dryRun)
		for _, w := range report.Warnings {
			rt.println(theme.Warning.Render("warning:"), w)
		}
		if err != nil {
			return err
		}

		printPlan(rt, student, subjects, res, dryRun, explain)
		return nil
	},
}

func init() {
	planCmd.Flags().StringP("file", "f", "", "Plan file (YAML or JSON)")
	planCmd.Flags().Bool("demo", false, "Use the built-in demo student and subjects")
	planCmd.Flags().String("branch", "", "Replace the subjects with a branch's templates (e.g. cse)")
	planCmd.Flags().String("start", "", "First day of the schedule, YYYY-MM-DD (default today)")
	planCmd.Flags().Bool("dry-run", false, "Print the schedule without saving it")
	planCmd.Flags().Bool("explain", false, "Show how hours were allocated to each topic")
}

func printPlan(rt *runtime, student planner.StudentProfile, subjects []planner.Subject, res *planner.Result, dryRun, explain bool) {
	names := newNameIndex(subjects)
	sched := res.Schedule
	cov := progress.Coverage(res.Allocations, sched.Sessions)

	title := fmt.Sprintf("Study plan for %s (version %d)", student.Name, sched.Version)
	if dryRun {
		title = fmt.Sprintf("Study plan for %s (dry run, not saved)", student.Name)
	}
	rt.println(theme.Title.Render(title))
	rt.println(theme.Subtitle.Render(fmt.Sprintf(
		"%s to %s, %s available, %s allocated, %s scheduled (%d%%), %d sessions over %d days",
		res.Start.Format(catalog.DateLayout), student.TargetDate.Format(catalog.DateLayout),
		hours(res.TotalHours), hours(cov.AllocatedHours), hours(cov.ScheduledHours), cov.Percent(),
		len(sched.Sessions), res.Pack.Days,
	)))
	rt.println()

	if len(sched.Sessions) == 0 {
		rt.println(theme.Hint.Render("No sessions could be scheduled."))
	} else {
		rt.printf("%s", sessionTable(sched.Sessions, names))
	}

	for _, e := range res.Ordering.BrokenEdges {
		rt.println(theme.Warning.Render("warning:"), fmt.Sprintf(
			"prerequisite cycle: ignored %q as a prerequisite of %q",
			names.topic(e.PrerequisiteID), names.topic(e.TopicID)))
	}
	if res.Pack.Stop != planner.StopComplete {
		rt.println(theme.Warning.Render("warning:"), fmt.Sprintf(
			"packing stopped early (%s), %s across %d topics left unscheduled",
			res.Pack.Stop, hours(res.Pack.UnscheduledHours()), len(res.Pack.Unscheduled)))
	}
	for _, t := range cov.Topics {
		if t.Unscheduled {
			rt.println(theme.Warning.Render("warning:"), fmt.Sprintf(
				"%s (%s) got no sessions", names.topic(t.TopicID), names.subject(t.SubjectID)))
		}
	}

	if explain {
		rt.println()
		rt.printf("%s", allocationTable(res, cov, names))
	}
}

// allocationTable shows each topic's priority, allocated hours and what
// the packer managed to schedule, in allocation order.
func allocationTable(res *planner.Result, cov progress.CoverageReport, names nameIndex) string {
	priority := make(map[string]float64, len(res.Priorities))
	for _, p := range res.Priorities {
		priority[p.Topic.ID] = p.Priority
	}
	dropped := make(map[string]bool, len(res.Pack.Dropped))
	for _, d := range res.Pack.Dropped {
		dropped[d.TopicID] = true
	}

	tbl := components.NewTable("#", "Topic", "Subject", "Priority", "Allocated", "Scheduled", "Short", "Note")
	for i, t := range cov.Topics {
		note := ""
		switch {
		case t.Unscheduled:
			note = theme.Failure.Render("unscheduled")
		case dropped[t.TopicID]:
			note = theme.Hint.Render("remainder under min session")
		}
		tbl.Add(
			strconv.Itoa(i+1),
			truncate(names.topic(t.TopicID), 32),
			truncate(names.subject(t.SubjectID), 24),
			fmt.Sprintf("%.2f", priority[t.TopicID]),
			hours(t.AllocatedHours),
			hours(t.ScheduledHours),
			hours(t.ShortfallHours),
			note,
		)
	}
	return tbl.View()
}
