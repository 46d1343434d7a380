package progress

import (
	"time"

	"github.com/abhisek/studyplan/internal/planner"
)

// TopicCoverage compares a topic's allocated hours with what the packer
// managed to schedule.
type TopicCoverage struct {
	TopicID        string  `json:"topic_id"`
	SubjectID      string  `json:"subject_id"`
	AllocatedHours float64 `json:"allocated_hours"`
	ScheduledHours float64 `json:"scheduled_hours"`
	ShortfallHours float64 `json:"shortfall_hours"`
	Unscheduled    bool    `json:"unscheduled"`
}

// CoverageReport lists per-topic coverage in allocation order.
type CoverageReport struct {
	Topics         []TopicCoverage `json:"topics"`
	AllocatedHours float64         `json:"allocated_hours"`
	ScheduledHours float64         `json:"scheduled_hours"`
	Unscheduled    int             `json:"unscheduled"`
}

// Percent returns the share of allocated hours that got scheduled, capped at 100.
func (r CoverageReport) Percent() int {
	if r.AllocatedHours <= 0 {
		return 100
	}
	return min(100, int(r.ScheduledHours/r.AllocatedHours*100+0.5))
}

// Coverage reports, per allocated topic, how many hours were scheduled.
// A topic with no session at all is flagged Unscheduled.
func Coverage(allocs []planner.Allocation, sessions []planner.StudySession) CoverageReport {
	scheduled := make(map[string]time.Duration)
	for _, s := range sessions {
		scheduled[s.TopicID] += s.Duration
	}

	var r CoverageReport
	for _, a := range allocs {
		got := scheduled[a.TopicID].Hours()
		tc := TopicCoverage{
			TopicID:        a.TopicID,
			SubjectID:      a.SubjectID,
			AllocatedHours: a.Hours,
			ScheduledHours: got,
			ShortfallHours: max(0, a.Hours-got),
			Unscheduled:    got == 0,
		}
		if tc.Unscheduled {
			r.Unscheduled++
		}
		r.AllocatedHours += a.Hours
		r.ScheduledHours += got
		r.Topics = append(r.Topics, tc)
	}
	return r
}
