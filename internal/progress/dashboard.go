// Package progress derives dashboard figures from a stored schedule:
// today's sessions, the current recommendation, completion percentages,
// allocation coverage and weekly statistics. All functions are pure.
package progress

import (
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/studyplan/internal/planner"
)

// DefaultUpcoming is the number of upcoming sessions shown by default.
const DefaultUpcoming = 5

// recommendWindow is how far, in whole hours, a session's start may be
// from the current hour to count as "now".
const recommendWindow = 1

// Today returns the sessions dated on the calendar day of now, in order.
func Today(sessions []planner.StudySession, now time.Time) []planner.StudySession {
	var out []planner.StudySession
	for _, s := range sessions {
		if sameDay(s.Date, now) {
			out = append(out, s)
		}
	}
	return out
}

// Recommend picks the session to work on now: the first pending session
// today whose start hour is within an hour of now, otherwise the first
// pending session today. ok is false when nothing is pending today.
func Recommend(sessions []planner.StudySession, now time.Time) (rec planner.StudySession, ok bool) {
	var pending []planner.StudySession
	for _, s := range Today(sessions, now) {
		if Pending(s) {
			pending = append(pending, s)
		}
	}
	if len(pending) == 0 {
		return planner.StudySession{}, false
	}
	for _, s := range pending {
		h, err := StartHour(s.StartTime)
		if err != nil {
			continue
		}
		if abs(h-now.Hour()) <= recommendWindow {
			return s, true
		}
	}
	return pending[0], true
}

// Upcoming returns up to limit pending sessions dated after the day of now.
// A limit <= 0 returns all of them.
func Upcoming(sessions []planner.StudySession, now time.Time, limit int) []planner.StudySession {
	today := midnight(now)
	var out []planner.StudySession
	for _, s := range sessions {
		if !Pending(s) || !midnight(s.Date).After(today) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Pending reports whether a session still waits to be studied.
func Pending(s planner.StudySession) bool {
	return s.Status == planner.StatusScheduled || s.Status == planner.StatusRescheduled
}

// StartHour parses the hour of an "HH:MM" start time.
func StartHour(startTime string) (int, error) {
	h, _, _ := strings.Cut(startTime, ":")
	return strconv.Atoi(h)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
