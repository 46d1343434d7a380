package planner

import "time"

// TimePreference is the band of the day a student prefers to study in.
type TimePreference string

const (
	TimeMorning   TimePreference = "morning"
	TimeAfternoon TimePreference = "afternoon"
	TimeEvening   TimePreference = "evening"
	TimeNight     TimePreference = "night"
)

// AllTimePreferences returns the preferences in day order.
func AllTimePreferences() []TimePreference {
	return []TimePreference{TimeMorning, TimeAfternoon, TimeEvening, TimeNight}
}

// CognitiveLoad is the qualitative difficulty tier of a topic.
type CognitiveLoad string

const (
	LoadLow    CognitiveLoad = "low"
	LoadMedium CognitiveLoad = "medium"
	LoadHigh   CognitiveLoad = "high"
)

// Importance is the weight tier of a subject.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// SessionType describes what a study session is for.
type SessionType string

const (
	SessionLearning SessionType = "learning"
	SessionRevision SessionType = "revision"
	SessionPractice SessionType = "practice"
	SessionDrill    SessionType = "drill"
)

// SessionStatus is the lifecycle state of a study session.
type SessionStatus string

const (
	StatusScheduled   SessionStatus = "scheduled"
	StatusInProgress  SessionStatus = "in_progress"
	StatusCompleted   SessionStatus = "completed"
	StatusMissed      SessionStatus = "missed"
	StatusRescheduled SessionStatus = "rescheduled"
)

// Feedback is the difficulty a student reports after finishing a session.
type Feedback string

const (
	FeedbackEasy   Feedback = "easy"
	FeedbackMedium Feedback = "medium"
	FeedbackHard   Feedback = "hard"
)

// Availability holds the daily study-hour budget.
type Availability struct {
	WeekdayHours float64 `json:"weekday_hours"`
	WeekendHours float64 `json:"weekend_hours"`
}

// HoursOn returns the budget for the given calendar day.
func (a Availability) HoursOn(day time.Time) float64 {
	if isWeekend(day) {
		return a.WeekendHours
	}
	return a.WeekdayHours
}

// StudentProfile is the immutable student input to the planner.
type StudentProfile struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email,omitempty"`
	Branch        string         `json:"branch,omitempty"`
	Availability  Availability   `json:"availability"`
	PreferredTime TimePreference `json:"preferred_time"`
	TargetDate    time.Time      `json:"target_date"`
}

// Topic is the smallest schedulable unit of study content.
type Topic struct {
	ID            string        `json:"id"`
	SubjectID     string        `json:"subject_id"`
	Name          string        `json:"name"`
	CognitiveLoad CognitiveLoad `json:"cognitive_load"`
	Prerequisites []string      `json:"prerequisites,omitempty"`
	Confidence    int           `json:"confidence"`
	IsWeak        bool          `json:"is_weak"`
}

// Subject is a weighted grouping of topics.
type Subject struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Credits    int        `json:"credits"`
	Importance Importance `json:"importance"`
	Topics     []Topic    `json:"topics"`
}

// StudySession is a single block of study time for one topic on one day.
// Lifecycle fields are only ever set by callers after generation.
type StudySession struct {
	ID            string
	TopicID       string
	SubjectID     string
	Date          time.Time
	StartTime     string
	Duration      time.Duration
	Type          SessionType
	CognitiveLoad CognitiveLoad
	Status        SessionStatus

	ActualStart *time.Time
	ActualEnd   *time.Time
	Feedback    Feedback
	Notes       string
}

// Minutes returns the session length in minutes.
func (s StudySession) Minutes() float64 {
	return s.Duration.Minutes()
}

// Schedule is the output of one planner invocation.
type Schedule struct {
	ID          string
	StudentID   string
	Sessions    []StudySession
	GeneratedAt time.Time
	UpdatedAt   time.Time
	Version     int
}
