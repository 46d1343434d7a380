package progress

import (
	"math"
	"time"

	"github.com/abhisek/studyplan/internal/planner"
)

// Summary is the overall progress of a schedule.
type Summary struct {
	Total        int               `json:"total"`
	Completed    int               `json:"completed"`
	Missed       int               `json:"missed"`
	InProgress   int               `json:"in_progress"`
	Pending      int               `json:"pending"`
	Percent      int               `json:"completion_percent"`
	HoursPlanned float64           `json:"hours_planned"`
	HoursStudied float64           `json:"hours_studied"`
	Subjects     []SubjectProgress `json:"subjects"`
}

// SubjectProgress is the progress of one subject.
type SubjectProgress struct {
	SubjectID      string          `json:"subject_id"`
	Name           string          `json:"name"`
	Sessions       int             `json:"sessions"`
	Completed      int             `json:"completed"`
	Percent        int             `json:"completion_percent"`
	HoursSpent     float64         `json:"hours_spent"`
	HoursRemaining float64         `json:"hours_remaining"`
	Topics         []TopicProgress `json:"topics"`
}

// TopicProgress is the progress of one topic.
type TopicProgress struct {
	TopicID      string           `json:"topic_id"`
	Name         string           `json:"name"`
	Sessions     int              `json:"sessions"`
	Completed    int              `json:"completed"`
	Percent      int              `json:"completion_percent"`
	HoursSpent   float64          `json:"hours_spent"`
	LastFeedback planner.Feedback `json:"last_feedback,omitempty"`
}

// Percent returns done/total as a rounded percentage, 0 when total is 0.
func Percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// CompletionPercent returns the share of completed sessions, rounded.
func CompletionPercent(sessions []planner.StudySession) int {
	done := 0
	for _, s := range sessions {
		if s.Status == planner.StatusCompleted {
			done++
		}
	}
	return Percent(done, len(sessions))
}

// Studied returns the time spent on a completed session: the recorded
// start to end span when both are known, else the planned duration.
// Sessions that are not completed count zero.
func Studied(s planner.StudySession) time.Duration {
	if s.Status != planner.StatusCompleted {
		return 0
	}
	if s.ActualStart != nil && s.ActualEnd != nil {
		if d := s.ActualEnd.Sub(*s.ActualStart); d > 0 {
			return d
		}
	}
	return s.Duration
}

// Summarize computes overall, per-subject and per-topic progress. Subjects
// and topics are listed in catalog order; sessions for topics missing from
// the catalog are counted only in the totals.
func Summarize(sessions []planner.StudySession, subjects []planner.Subject) Summary {
	type acc struct {
		sessions, completed int
		spent, remaining    time.Duration
		lastFeedback        planner.Feedback
	}
	byTopic := make(map[string]*acc)
	bySubject := make(map[string]*acc)
	get := func(m map[string]*acc, k string) *acc {
		a, ok := m[k]
		if !ok {
			a = &acc{}
			m[k] = a
		}
		return a
	}

	var sum Summary
	for _, s := range sessions {
		sum.Total++
		sum.HoursPlanned += s.Duration.Hours()
		switch {
		case s.Status == planner.StatusCompleted:
			sum.Completed++
		case s.Status == planner.StatusMissed:
			sum.Missed++
		case s.Status == planner.StatusInProgress:
			sum.InProgress++
		case Pending(s):
			sum.Pending++
		}
		studied := Studied(s)
		sum.HoursStudied += studied.Hours()

		for _, a := range []*acc{get(byTopic, s.TopicID), get(bySubject, s.SubjectID)} {
			a.sessions++
			a.spent += studied
			if s.Status == planner.StatusCompleted {
				a.completed++
				if s.Feedback != "" {
					a.lastFeedback = s.Feedback
				}
			} else if s.Status != planner.StatusMissed {
				a.remaining += s.Duration
			}
		}
	}
	sum.Percent = Percent(sum.Completed, sum.Total)

	for _, subj := range subjects {
		sa := get(bySubject, subj.ID)
		sp := SubjectProgress{
			SubjectID:      subj.ID,
			Name:           subj.Name,
			Sessions:       sa.sessions,
			Completed:      sa.completed,
			Percent:        Percent(sa.completed, sa.sessions),
			HoursSpent:     sa.spent.Hours(),
			HoursRemaining: sa.remaining.Hours(),
		}
		for _, t := range subj.Topics {
			ta := get(byTopic, t.ID)
			sp.Topics = append(sp.Topics, TopicProgress{
				TopicID:      t.ID,
				Name:         t.Name,
				Sessions:     ta.sessions,
				Completed:    ta.completed,
				Percent:      Percent(ta.completed, ta.sessions),
				HoursSpent:   ta.spent.Hours(),
				LastFeedback: ta.lastFeedback,
			})
		}
		sum.Subjects = append(sum.Subjects, sp)
	}
	return sum
}
