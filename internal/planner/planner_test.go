package planner

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestPlanner(cfg Config) *Planner {
	fixed := date(2024, time.January, 1)
	return New(cfg, nil,
		WithIDGenerator(seqIDs()),
		WithClock(func() time.Time { return fixed }),
	)
}

func totalDuration(sessions []StudySession) time.Duration {
	var d time.Duration
	for _, s := range sessions {
		d += s.Duration
	}
	return d
}

func TestPlan_SingleWeakTopic(t *testing.T) {
	start := date(2024, time.January, 1) // Monday
	student := StudentProfile{
		ID:            "stu",
		Availability:  Availability{WeekdayHours: 3, WeekendHours: 6},
		PreferredTime: TimeMorning,
		TargetDate:    start.AddDate(0, 0, 7),
	}
	subjects := []Subject{{
		ID: "dsa", Credits: 4, Importance: ImportanceHigh,
		Topics: []Topic{{ID: "arrays", SubjectID: "dsa", Confidence: 1, CognitiveLoad: LoadHigh, IsWeak: true}},
	}}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, start)

	require.Equal(t, 30.0, res.TotalHours)
	require.Len(t, res.Allocations, 1)
	wantHours := math.Max(1, 4.0/4.0*res.TotalHours*1.0*1.3*0.8)
	assert.InDelta(t, wantHours, res.Allocations[0].Hours, 1e-9)

	sessions := res.Schedule.Sessions
	require.NotEmpty(t, sessions)
	assert.True(t, sessions[0].Date.Equal(start), "first session on start date")
	assert.Equal(t, "08:00", sessions[0].StartTime)
	for _, s := range sessions {
		assert.LessOrEqual(t, s.Duration, 60*time.Minute)
		assert.GreaterOrEqual(t, s.Duration, 30*time.Minute)
		assert.Equal(t, StatusScheduled, s.Status)
		assert.Equal(t, LoadHigh, s.CognitiveLoad)
		assert.Equal(t, SessionLearning, s.Type)
	}

	// 31.2h allocated but only 30h fit before the deadline.
	assert.Equal(t, 30*time.Hour, totalDuration(sessions))
	assert.Equal(t, StopDeadline, res.Pack.Stop)
	assert.InDelta(t, 1.2, res.Pack.UnscheduledHours(), 1e-6)

	assert.Equal(t, "stu", res.Schedule.StudentID)
	assert.Equal(t, ScheduleVersion, res.Schedule.Version)
	assert.Equal(t, res.Schedule.GeneratedAt, res.Schedule.UpdatedAt)
}

func TestPlan_ZeroCreditsEqualSplit(t *testing.T) {
	start := date(2024, time.January, 1)
	student := StudentProfile{
		Availability: Availability{WeekdayHours: 4, WeekendHours: 4},
		TargetDate:   start.AddDate(0, 0, 9), // 10 days, 40 hours
	}
	subjects := []Subject{
		{ID: "a", Topics: []Topic{{ID: "a1", Confidence: 1, CognitiveLoad: LoadMedium}}},
		{ID: "b", Topics: []Topic{{ID: "b1", Confidence: 1, CognitiveLoad: LoadMedium}}},
	}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, start)

	require.Len(t, res.Allocations, 2)
	for _, a := range res.Allocations {
		assert.False(t, math.IsNaN(a.Hours) || math.IsInf(a.Hours, 0), "allocation %v", a.Hours)
		assert.InDelta(t, 40.0/2*0.8, a.Hours, 1e-9)
	}
	for _, s := range res.Schedule.Sessions {
		assert.GreaterOrEqual(t, s.Duration, 30*time.Minute)
		assert.LessOrEqual(t, s.Duration, 60*time.Minute)
	}
	assert.Equal(t, StopComplete, res.Pack.Stop)
}

func TestPlan_TargetEqualsStart(t *testing.T) {
	start := date(2024, time.January, 3) // Wednesday
	student := StudentProfile{
		Availability:  Availability{WeekdayHours: 2, WeekendHours: 8},
		PreferredTime: TimeEvening,
		TargetDate:    start,
	}
	subjects := []Subject{{ID: "s", Credits: 3, Topics: []Topic{
		{ID: "t1", Confidence: 2}, {ID: "t2", Confidence: 2}, {ID: "t3", Confidence: 2},
	}}}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, start)

	assert.LessOrEqual(t, totalDuration(res.Schedule.Sessions), 2*time.Hour)
	for _, s := range res.Schedule.Sessions {
		assert.True(t, s.Date.Equal(start))
	}
	assert.Equal(t, StopDeadline, res.Pack.Stop)
	assert.NotEmpty(t, res.Pack.Unscheduled)
	assert.Equal(t, 1, res.Pack.Days)
}

func TestPlan_AllocationFloorWithZeroAvailability(t *testing.T) {
	start := date(2024, time.January, 1)
	student := StudentProfile{TargetDate: start.AddDate(0, 0, -3)}
	subjects := []Subject{{ID: "s", Credits: 2, Topics: []Topic{{ID: "t", Confidence: 5}}}}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, start)

	assert.Equal(t, 0.0, res.TotalHours)
	require.Len(t, res.Allocations, 1)
	assert.Equal(t, 1.0, res.Allocations[0].Hours)
	assert.Empty(t, res.Schedule.Sessions)
	assert.NotNil(t, res.Schedule.Sessions)
}

func TestPlan_Deterministic(t *testing.T) {
	start := date(2024, time.February, 5)
	student := StudentProfile{
		Availability: Availability{WeekdayHours: 3, WeekendHours: 5},
		TargetDate:   start.AddDate(0, 1, 0),
	}
	subjects := []Subject{
		{ID: "x", Credits: 3, Importance: ImportanceHigh, Topics: []Topic{
			{ID: "x1", Confidence: 2, CognitiveLoad: LoadHigh, IsWeak: true},
			{ID: "x2", Confidence: 4, CognitiveLoad: LoadLow, Prerequisites: []string{"x1"}},
		}},
		{ID: "y", Credits: 2, Importance: ImportanceLow, Topics: []Topic{
			{ID: "y1", Confidence: 3, CognitiveLoad: LoadMedium},
		}},
	}

	a := New(DefaultConfig(), nil).Plan(student, subjects, start)
	b := New(DefaultConfig(), nil).Plan(student, subjects, start)

	assert.Equal(t, a.Allocations, b.Allocations)
	require.Equal(t, len(a.Priorities), len(b.Priorities))
	for i := range a.Priorities {
		assert.Equal(t, a.Priorities[i].Topic.ID, b.Priorities[i].Topic.ID)
		assert.Equal(t, a.Priorities[i].Priority, b.Priorities[i].Priority)
	}
	assert.NotEqual(t, a.Schedule.ID, b.Schedule.ID)
}

func TestPlan_CyclicPrerequisitesTerminate(t *testing.T) {
	start := date(2024, time.January, 1)
	student := StudentProfile{
		Availability: Availability{WeekdayHours: 1, WeekendHours: 1},
		TargetDate:   start.AddDate(5, 0, 0),
	}
	subjects := []Subject{{ID: "s", Credits: 1, Topics: []Topic{
		{ID: "a", Confidence: 1, Prerequisites: []string{"b"}},
		{ID: "b", Confidence: 1, Prerequisites: []string{"a"}},
	}}}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, start)

	assert.Len(t, res.Ordering.Topics, 2)
	assert.Len(t, res.Ordering.BrokenEdges, 1)
	assert.LessOrEqual(t, res.Pack.Days, DefaultMaxDays)
	assert.Equal(t, StopIterationLimit, res.Pack.Stop)
}

func TestPlan_ZeroStartUsesClock(t *testing.T) {
	student := StudentProfile{
		Availability: Availability{WeekdayHours: 1, WeekendHours: 1},
		TargetDate:   date(2024, time.January, 10),
	}
	subjects := []Subject{{ID: "s", Credits: 1, Topics: []Topic{{ID: "t", Confidence: 5}}}}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, time.Time{})

	assert.True(t, res.Start.Equal(date(2024, time.January, 1)))
	require.NotEmpty(t, res.Schedule.Sessions)
	assert.True(t, res.Schedule.Sessions[0].Date.Equal(res.Start))
}

func TestGenerateSchedule_SessionIDsUnique(t *testing.T) {
	start := date(2024, time.January, 1)
	student := StudentProfile{
		Availability: Availability{WeekdayHours: 4, WeekendHours: 4},
		TargetDate:   start.AddDate(0, 0, 20),
	}
	subjects := []Subject{{ID: "s", Credits: 1, Topics: []Topic{{ID: "a", Confidence: 1}, {ID: "b", Confidence: 2}}}}

	schedule := New(DefaultConfig(), nil).GenerateSchedule(student, subjects, start)

	seen := make(map[string]bool)
	for _, s := range schedule.Sessions {
		if seen[s.ID] {
			t.Fatalf("duplicate session id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	p := New(Config{}, nil)
	assert.Equal(t, DefaultConfig(), p.Config())

	p = New(Config{MaxSession: 20 * time.Minute, MinSession: 45 * time.Minute}, nil)
	assert.Equal(t, 20*time.Minute, p.Config().MinSession)
}

func TestPlan_FarTargetDate(t *testing.T) {
	start := date(2024, time.January, 1)
	student := StudentProfile{
		ID:            "stu",
		Availability:  Availability{WeekdayHours: 24, WeekendHours: 24},
		PreferredTime: TimeMorning,
		TargetDate:    date(2400, time.January, 1),
	}
	subjects := []Subject{{
		ID: "dsa", Credits: 4, Importance: ImportanceHigh,
		Topics: []Topic{{ID: "arrays", SubjectID: "dsa", Confidence: 1, CognitiveLoad: LoadHigh}},
	}}

	res := newTestPlanner(DefaultConfig()).Plan(student, subjects, start)

	require.Len(t, res.Allocations, 1)
	alloc := res.Allocations[0].Hours
	require.Greater(t, alloc, time.Duration(math.MaxInt64).Hours())

	assert.Len(t, res.Schedule.Sessions, DefaultMaxDays*24)
	assert.Equal(t, StopIterationLimit, res.Pack.Stop)
	assert.Empty(t, res.Pack.Dropped)
	assert.InDelta(t, alloc-float64(DefaultMaxDays*24), res.Pack.UnscheduledHours(), 1e-3)
}

func TestCreditShare(t *testing.T) {
	tests := []struct {
		name                     string
		credits, total, subjects int
		hours                    float64
		want                     float64
	}{
		{"by credits", 3, 4, 2, 40, 30},
		{"zero credits", 0, 0, 4, 40, 10},
		{"negative credits", -2, -4, 2, 40, 20},
		{"no subjects", 0, 0, 0, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, creditShare(tt.credits, tt.total, tt.hours, tt.subjects), 1e-9)
		})
	}
}
