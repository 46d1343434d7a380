package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's sessions and what to study now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		student, _ := cmd.Flags().GetString("student")
		d, err := rt.app.Dashboard(cmd.Context(), student)
		if err != nil {
			return err
		}
		if d.Plan.Schedule == nil {
			return fmt.Errorf("%s has no schedule yet, run `studyplan plan`", d.Plan.Student.Name)
		}
		names := newNameIndex(d.Plan.Subjects)
		now := rt.app.Now()

		rt.println(theme.Title.Render(fmt.Sprintf("%s, %s", d.Plan.Student.Name, now.Format("Monday 2 January"))))
		rt.println(components.NewProgressBar("Overall", float64(d.Summary.Percent)/100, true, 50).View())
		rt.println()

		if rec := d.Recommendation; rec != nil {
			rt.println(theme.Highlight.Render("Up next:"), fmt.Sprintf("%s, %s at %s for %d min (%s)",
				names.topic(rec.TopicID), names.subject(rec.SubjectID),
				rec.StartTime, int(rec.Minutes()), rec.Date.Format("Mon 2 Jan")))
			rt.println(theme.Hint.Render("  studyplan session start " + rec.ID))
			rt.println()
		}

		if len(d.Today) == 0 {
			rt.println(theme.Hint.Render("Nothing scheduled today."))
		} else {
			rt.println(theme.Subtitle.Render("Today"))
			rt.printf("%s", sessionTable(d.Today, names))
		}

		if len(d.Upcoming) > 0 {
			rt.println()
			rt.println(theme.Subtitle.Render("Upcoming"))
			rt.printf("%s", sessionTable(d.Upcoming, names))
		}
		return nil
	},
}

func init() {
	todayCmd.Flags().String("student", "", "Student id (default the most recently planned student)")
}
