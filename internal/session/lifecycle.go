// Package session tracks what happens to scheduled study sessions after
// the planner emits them: starting, completing with difficulty feedback,
// missing and rescheduling. Lifecycle changes never regenerate a schedule.
package session

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/abhisek/studyplan/internal/planner"
)

// ErrInvalidTransition is returned when a session cannot move from its
// current status to the requested one.
var ErrInvalidTransition = errors.New("invalid session transition")

// ErrInvalidFeedback is returned for a difficulty other than easy, medium or hard.
var ErrInvalidFeedback = errors.New("invalid feedback")

// ErrInvalidStartTime is returned for a start time not in HH:MM form.
var ErrInvalidStartTime = errors.New("invalid start time")

var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Start marks the session in progress and records when it began.
func Start(sess planner.StudySession, now time.Time) (planner.StudySession, error) {
	if err := check(sess, planner.StatusInProgress, planner.StatusScheduled, planner.StatusRescheduled); err != nil {
		return sess, err
	}
	sess.Status = planner.StatusInProgress
	sess.ActualStart = &now
	sess.ActualEnd = nil
	return sess, nil
}

// Complete marks the session completed with the reported difficulty. A
// session that was never started may be completed directly.
func Complete(sess planner.StudySession, feedback planner.Feedback, notes string, now time.Time) (planner.StudySession, error) {
	if !ValidFeedback(feedback) {
		return sess, fmt.Errorf("%w: %q", ErrInvalidFeedback, feedback)
	}
	if err := check(sess, planner.StatusCompleted,
		planner.StatusScheduled, planner.StatusRescheduled, planner.StatusInProgress); err != nil {
		return sess, err
	}
	sess.Status = planner.StatusCompleted
	sess.ActualEnd = &now
	sess.Feedback = feedback
	if notes != "" {
		sess.Notes = notes
	}
	return sess, nil
}

// Miss marks the session missed.
func Miss(sess planner.StudySession) (planner.StudySession, error) {
	if err := check(sess, planner.StatusMissed,
		planner.StatusScheduled, planner.StatusRescheduled, planner.StatusInProgress); err != nil {
		return sess, err
	}
	sess.Status = planner.StatusMissed
	return sess, nil
}

// Reschedule moves the session to a new day and start time. Completed and
// running sessions stay where they are.
func Reschedule(sess planner.StudySession, date time.Time, startTime string) (planner.StudySession, error) {
	if !slotPattern.MatchString(startTime) {
		return sess, fmt.Errorf("%w %q, want HH:MM", ErrInvalidStartTime, startTime)
	}
	if err := check(sess, planner.StatusRescheduled,
		planner.StatusScheduled, planner.StatusRescheduled, planner.StatusMissed); err != nil {
		return sess, err
	}
	sess.Status = planner.StatusRescheduled
	sess.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	sess.StartTime = startTime
	sess.ActualStart = nil
	sess.ActualEnd = nil
	return sess, nil
}

// ValidFeedback reports whether f is a known difficulty.
func ValidFeedback(f planner.Feedback) bool {
	switch f {
	case planner.FeedbackEasy, planner.FeedbackMedium, planner.FeedbackHard:
		return true
	}
	return false
}

func check(sess planner.StudySession, to planner.SessionStatus, from ...planner.SessionStatus) error {
	for _, s := range from {
		if sess.Status == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s (session %s)", ErrInvalidTransition, sess.Status, to, sess.ID)
}
