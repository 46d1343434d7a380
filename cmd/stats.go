package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

const barWidth = 60

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion, coverage and weekly statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		studentID, _ := cmd.Flags().GetString("student")
		showTopics, _ := cmd.Flags().GetBool("topics")

		d, err := rt.app.Dashboard(cmd.Context(), studentID)
		if err != nil {
			return err
		}
		if d.Plan.Schedule == nil {
			return fmt.Errorf("%s has no schedule yet, run `studyplan plan`", d.Plan.Student.Name)
		}
		cov, err := rt.app.Coverage(cmd.Context(), d.Plan.Student.ID)
		if err != nil {
			return err
		}

		sum := d.Summary
		rt.println(theme.Title.Render(fmt.Sprintf("%s: schedule version %d", d.Plan.Student.Name, d.Plan.Schedule.Version)))
		rt.println(components.NewProgressBar("Overall", float64(sum.Percent)/100, true, barWidth).View())
		rt.println(theme.Subtitle.Render(fmt.Sprintf(
			"%d sessions: %d completed, %d in progress, %d missed, %d pending. %s of %s studied.",
			sum.Total, sum.Completed, sum.InProgress, sum.Missed, sum.Pending,
			hours(sum.HoursStudied), hours(sum.HoursPlanned))))
		rt.println()

		rt.println(theme.Highlight.Render("Subjects"))
		for _, s := range sum.Subjects {
			rt.println(components.NewProgressBar(fmt.Sprintf("%-24s", truncate(s.Name, 24)), float64(s.Percent)/100, true, barWidth).View())
			if !showTopics {
				continue
			}
			for _, t := range s.Topics {
				label := fmt.Sprintf("  %-22s", truncate(t.Name, 22))
				line := components.NewProgressBar(label, float64(t.Percent)/100, true, barWidth).View()
				if t.LastFeedback != "" {
					line += theme.Hint.Render(fmt.Sprintf("  last: %s", t.LastFeedback))
				}
				rt.println(line)
			}
		}
		rt.println()

		rt.println(theme.Highlight.Render("Coverage"))
		rt.println(fmt.Sprintf("%s of %s allocated hours scheduled (%d%%)",
			hours(cov.ScheduledHours), hours(cov.AllocatedHours), cov.Percent()))
		if cov.Unscheduled > 0 {
			rt.println(theme.Warning.Render("warning:"), fmt.Sprintf("%d topics have no sessions", cov.Unscheduled))
		}
		rt.println()

		w := d.Week
		rt.println(theme.Highlight.Render(fmt.Sprintf("Week of %s", w.WeekStart.Format(catalog.DateLayout))))
		rt.println(fmt.Sprintf("%d scheduled, %d completed, %d missed, %s studied", w.Scheduled, w.Completed, w.Missed, hours(w.HoursStudied)))
		if w.AverageDifficulty > 0 {
			rt.println(fmt.Sprintf("average difficulty %.1f (1 easy, 3 hard)", w.AverageDifficulty))
		}

		if snap := d.LastSnapshot; snap != nil {
			rt.println()
			rt.println(theme.Hint.Render(fmt.Sprintf("Last snapshot %s, event #%d",
				snap.Timestamp.Local().Format("2006-01-02 15:04"), snap.Sequence)))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("student", "", "Student id (default the most recently planned student)")
	statsCmd.Flags().Bool("topics", false, "Break each subject down by topic")
}
