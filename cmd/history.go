package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/ui/components"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the log of generated schedules and session changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		events, err := rt.app.History(cmd.Context(), stringFlag(cmd, "student"), stringFlag(cmd, "session"))
		if err != nil {
			return err
		}
		if len(events) == 0 {
			rt.println(theme.Hint.Render("No events yet."))
			return nil
		}

		tbl := components.NewTable("#", "When", "Action", "Change", "Feedback", "Detail", "Session")
		for _, ev := range events {
			change := ""
			if ev.ToStatus != "" {
				change = fmt.Sprintf("%s -> %s", ev.FromStatus, theme.Status(ev.ToStatus))
			}
			tbl.Add(
				strconv.FormatInt(ev.Sequence, 10),
				ev.Timestamp.Local().Format("2006-01-02 15:04"),
				ev.Action,
				change,
				string(ev.Feedback),
				ev.Detail,
				theme.Hint.Render(ev.SessionID),
			)
		}
		rt.printf("%s", tbl.View())
		return nil
	},
}

func init() {
	historyCmd.Flags().String("student", "", "Student id (default the most recently planned student)")
	historyCmd.Flags().String("session", "", "Only events of this session")
}
