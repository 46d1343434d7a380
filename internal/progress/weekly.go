package progress

import (
	"time"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
)

// difficultyScore maps reported feedback to a number for averaging.
var difficultyScore = map[planner.Feedback]float64{
	planner.FeedbackEasy:   1,
	planner.FeedbackMedium: 2,
	planner.FeedbackHard:   3,
}

// WeekStats summarizes the sessions of one seven-day week.
type WeekStats struct {
	WeekStart         time.Time `json:"week_start"`
	Scheduled         int       `json:"sessions_scheduled"`
	Completed         int       `json:"sessions_completed"`
	Missed            int       `json:"sessions_missed"`
	HoursStudied      float64   `json:"hours_studied"`
	AverageDifficulty float64   `json:"average_difficulty"`
}

// WeekStart returns the Monday midnight of the week containing t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -offset)
}

// Weekly computes stats over sessions dated in [start, start+7 days).
// AverageDifficulty is the mean feedback score (easy 1, medium 2, hard 3)
// over completed sessions that carry feedback, 0 when none do.
func Weekly(sessions []planner.StudySession, start time.Time) WeekStats {
	start = midnight(start)
	end := start.AddDate(0, 0, 7)
	ws := WeekStats{WeekStart: start}

	var scoreSum float64
	var scored int
	for _, s := range sessions {
		d := midnight(s.Date)
		if d.Before(start) || !d.Before(end) {
			continue
		}
		ws.Scheduled++
		switch s.Status {
		case planner.StatusCompleted:
			ws.Completed++
			ws.HoursStudied += Studied(s).Hours()
			if v, ok := difficultyScore[s.Feedback]; ok {
				scoreSum += v
				scored++
			}
		case planner.StatusMissed:
			ws.Missed++
		}
	}
	if scored > 0 {
		ws.AverageDifficulty = scoreSum / float64(scored)
	}
	return ws
}

// SnapshotData condenses a progress summary into the figures the store
// keeps per snapshot.
func SnapshotData(sum Summary, sessions []planner.StudySession, scheduleVersion int) store.SnapshotData {
	data := store.SnapshotData{
		Version:           1,
		ScheduleVersion:   scheduleVersion,
		TotalSessions:     sum.Total,
		Completed:         sum.Completed,
		Missed:            sum.Missed,
		HoursStudied:      sum.HoursStudied,
		CompletionPercent: sum.Percent,
	}
	var scoreSum float64
	var scored int
	for _, s := range sessions {
		if v, ok := difficultyScore[s.Feedback]; ok && s.Status == planner.StatusCompleted {
			scoreSum += v
			scored++
		}
	}
	if scored > 0 {
		data.AverageDifficulty = scoreSum / float64(scored)
	}
	if len(sum.Subjects) > 0 {
		data.Subjects = make(map[string]int, len(sum.Subjects))
		for _, sp := range sum.Subjects {
			data.Subjects[sp.SubjectID] = sp.Percent
		}
	}
	return data
}
