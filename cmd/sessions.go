package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/abhisek/studyplan/internal/ui/theme"
)

var sessionStatuses = []planner.SessionStatus{
	planner.StatusScheduled, planner.StatusInProgress, planner.StatusCompleted,
	planner.StatusMissed, planner.StatusRescheduled,
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List scheduled sessions (optionally filtered by status or date)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		studentID, _ := cmd.Flags().GetString("student")

		var filter store.SessionFilter
		if status != "" {
			if !slices.Contains(sessionStatuses, planner.SessionStatus(status)) {
				return fmt.Errorf("unknown status %q, want one of %s", status, joinStatuses())
			}
			filter.Status = planner.SessionStatus(status)
		}
		var err error
		if from != "" {
			if filter.From, err = parseDate("from", from); err != nil {
				return err
			}
		}
		if to != "" {
			if filter.To, err = parseDate("to", to); err != nil {
				return err
			}
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.app.Load(cmd.Context(), studentID)
		if err != nil {
			return err
		}
		sessions, err := rt.app.Sessions(cmd.Context(), p.Student.ID, filter)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			rt.println(theme.Hint.Render("No sessions match."))
			return nil
		}
		rt.printf("%s", sessionTable(sessions, newNameIndex(p.Subjects)))
		rt.printf("\n%d sessions\n", len(sessions))
		return nil
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Start, complete, miss or reschedule a session",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <session-id>",
	Short: "Mark a session as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(rt *runtime) (planner.StudySession, error) {
			return rt.app.StartSession(cmd.Context(), args[0])
		})
	},
}

var sessionCompleteCmd = &cobra.Command{
	Use:   "complete <session-id>",
	Short: "Mark a session as completed with how hard it felt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedback, _ := cmd.Flags().GetString("feedback")
		notes, _ := cmd.Flags().GetString("notes")
		return withSession(cmd, func(rt *runtime) (planner.StudySession, error) {
			return rt.app.CompleteSession(cmd.Context(), args[0], planner.Feedback(feedback), notes)
		})
	},
}

var sessionMissCmd = &cobra.Command{
	Use:   "miss <session-id>",
	Short: "Mark a session as missed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(rt *runtime) (planner.StudySession, error) {
			return rt.app.MissSession(cmd.Context(), args[0])
		})
	},
}

var sessionRescheduleCmd = &cobra.Command{
	Use:   "reschedule <session-id>",
	Short: "Move a session to another day and time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateRaw, _ := cmd.Flags().GetString("date")
		at, _ := cmd.Flags().GetString("at")
		date, err := parseDate("date", dateRaw)
		if err != nil {
			return err
		}
		return withSession(cmd, func(rt *runtime) (planner.StudySession, error) {
			return rt.app.RescheduleSession(cmd.Context(), args[0], date, at)
		})
	},
}

func init() {
	sessionsCmd.Flags().String("status", "", "Only sessions with this status ("+joinStatuses()+")")
	sessionsCmd.Flags().String("from", "", "Only sessions on or after this day, YYYY-MM-DD")
	sessionsCmd.Flags().String("to", "", "Only sessions on or before this day, YYYY-MM-DD")
	sessionsCmd.Flags().String("student", "", "Student id (default the most recently planned student)")

	sessionCompleteCmd.Flags().String("feedback", string(planner.FeedbackMedium), "How hard it felt: easy, medium or hard")
	sessionCompleteCmd.Flags().String("notes", "", "Free-form notes")

	sessionRescheduleCmd.Flags().String("date", "", "New day, YYYY-MM-DD")
	sessionRescheduleCmd.Flags().String("at", "", "New start time, HH:MM")
	_ = sessionRescheduleCmd.MarkFlagRequired("date")
	_ = sessionRescheduleCmd.MarkFlagRequired("at")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionCompleteCmd)
	sessionCmd.AddCommand(sessionMissCmd)
	sessionCmd.AddCommand(sessionRescheduleCmd)
}

// withSession runs one lifecycle change and prints the updated session.
func withSession(cmd *cobra.Command, fn func(rt *runtime) (planner.StudySession, error)) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	sess, err := fn(rt)
	if err != nil {
		return err
	}
	rt.println(fmt.Sprintf("Session %s is now %s (%s %s, %d min)",
		sess.ID, theme.Status(sess.Status), sess.Date.Format("Mon 2006-01-02"), sess.StartTime, int(sess.Minutes())))
	return nil
}

func joinStatuses() string {
	out := make([]string, len(sessionStatuses))
	for i, s := range sessionStatuses {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}
