package catalog

import (
	"time"

	"github.com/abhisek/studyplan/internal/planner"
)

// DemoStudentID identifies the demo student.
const DemoStudentID = "demo-student-1"

// demoHorizon is how far ahead of today the demo target date lies.
const demoHorizon = 14

// Demo returns a ready-made student and subject list for trying the
// planner out. The target date is two weeks after now.
func Demo(now time.Time) (planner.StudentProfile, []planner.Subject) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	student := planner.StudentProfile{
		ID:     DemoStudentID,
		Name:   "Aman Kumar",
		Email:  "aman@example.com",
		Branch: "cse",
		Availability: planner.Availability{
			WeekdayHours: 3,
			WeekendHours: 6,
		},
		PreferredTime: planner.TimeNight,
		TargetDate:    today.AddDate(0, 0, demoHorizon),
	}

	subjects := []planner.Subject{
		{
			ID: "subject-ds", Name: "Data Structures", Credits: 4, Importance: planner.ImportanceHigh,
			Topics: []planner.Topic{
				demoTopic("subject-ds", "topic-ds-arrays", "Arrays", planner.LoadLow, 4, false),
				demoTopic("subject-ds", "topic-ds-linked-lists", "Linked Lists", planner.LoadMedium, 4, false, "topic-ds-arrays"),
				demoTopic("subject-ds", "topic-ds-trees", "Trees", planner.LoadHigh, 2, true, "topic-ds-linked-lists"),
				demoTopic("subject-ds", "topic-ds-graphs", "Graphs", planner.LoadHigh, 2, true, "topic-ds-trees"),
			},
		},
		{
			ID: "subject-os", Name: "Operating Systems", Credits: 3, Importance: planner.ImportanceCritical,
			Topics: []planner.Topic{
				demoTopic("subject-os", "topic-os-processes", "Processes", planner.LoadMedium, 3, false),
				demoTopic("subject-os", "topic-os-threads", "Threads", planner.LoadMedium, 3, false, "topic-os-processes"),
				demoTopic("subject-os", "topic-os-deadlocks", "Deadlocks", planner.LoadHigh, 1, true, "topic-os-threads"),
				demoTopic("subject-os", "topic-os-memory", "Memory Management", planner.LoadHigh, 2, true, "topic-os-processes"),
			},
		},
		{
			ID: "subject-math", Name: "Engineering Mathematics", Credits: 4, Importance: planner.ImportanceMedium,
			Topics: []planner.Topic{
				demoTopic("subject-math", "topic-math-diff-eq", "Differential Equations", planner.LoadMedium, 4, false),
				demoTopic("subject-math", "topic-math-laplace", "Laplace Transform", planner.LoadHigh, 2, true, "topic-math-diff-eq"),
				demoTopic("subject-math", "topic-math-fourier", "Fourier Series", planner.LoadHigh, 3, false, "topic-math-diff-eq"),
			},
		},
	}
	return student, subjects
}

func demoTopic(subjectID, id, name string, load planner.CognitiveLoad, confidence int, weak bool, prereqs ...string) planner.Topic {
	return planner.Topic{
		ID:            id,
		SubjectID:     subjectID,
		Name:          name,
		CognitiveLoad: load,
		Prerequisites: prereqs,
		Confidence:    confidence,
		IsWeak:        weak,
	}
}
