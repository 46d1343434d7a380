package planner

import (
	"math"
	"testing"
	"time"
)

func packStudent(weekday, weekend float64, target time.Time) StudentProfile {
	return StudentProfile{
		Availability:  Availability{WeekdayHours: weekday, WeekendHours: weekend},
		PreferredTime: TimeMorning,
		TargetDate:    target,
	}
}

func TestPack_SplitsAcrossDayBoundary(t *testing.T) {
	monday := date(2024, time.January, 1)
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a", CognitiveLoad: LoadLow}}}}
	allocs := []Allocation{{TopicID: "a", SubjectID: "s", Hours: 2}}

	res := newTestPlanner(DefaultConfig()).Pack(allocs, subjects, packStudent(1.5, 1.5, monday.AddDate(0, 0, 5)), monday)

	want := []struct {
		day  time.Time
		slot string
		d    time.Duration
	}{
		{monday, "08:00", 60 * time.Minute},
		{monday, "09:00", 30 * time.Minute},
		{monday.AddDate(0, 0, 1), "08:00", 30 * time.Minute},
	}
	if len(res.Sessions) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(res.Sessions), len(want))
	}
	for i, w := range want {
		s := res.Sessions[i]
		if !s.Date.Equal(w.day) || s.StartTime != w.slot || s.Duration != w.d {
			t.Errorf("session %d: got (%s %s %v), want (%s %s %v)",
				i, s.Date.Format(time.DateOnly), s.StartTime, s.Duration,
				w.day.Format(time.DateOnly), w.slot, w.d)
		}
		if s.SubjectID != "s" || s.CognitiveLoad != LoadLow {
			t.Errorf("session %d: got subject %q load %q", i, s.SubjectID, s.CognitiveLoad)
		}
	}
	if res.Stop != StopComplete {
		t.Errorf("stop = %q, want complete", res.Stop)
	}
}

func TestPack_RetiresShortRemainder(t *testing.T) {
	monday := date(2024, time.January, 1)
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a"}, {ID: "b"}}}}
	allocs := []Allocation{
		{TopicID: "a", SubjectID: "s", Hours: 1.2},
		{TopicID: "b", SubjectID: "s", Hours: 1},
	}

	res := newTestPlanner(DefaultConfig()).Pack(allocs, subjects, packStudent(3, 3, monday), monday)

	if len(res.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(res.Sessions))
	}
	if res.Sessions[1].TopicID != "b" || res.Sessions[1].StartTime != "09:00" {
		t.Errorf("second session: got %s at %s, want b at 09:00", res.Sessions[1].TopicID, res.Sessions[1].StartTime)
	}
	if len(res.Dropped) != 1 || res.Dropped[0].TopicID != "a" {
		t.Fatalf("dropped = %+v, want topic a", res.Dropped)
	}
	if d := res.Dropped[0].Hours; d < 0.19 || d > 0.21 {
		t.Errorf("dropped hours = %v, want ~0.2", d)
	}
	if res.Stop != StopComplete {
		t.Errorf("stop = %q, want complete", res.Stop)
	}
}

func TestPack_IterationLimit(t *testing.T) {
	monday := date(2024, time.January, 1)
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a"}}}}
	allocs := []Allocation{{TopicID: "a", SubjectID: "s", Hours: 100}}
	cfg := DefaultConfig()
	cfg.MaxDays = 3

	res := newTestPlanner(cfg).Pack(allocs, subjects, packStudent(2, 2, monday.AddDate(1, 0, 0)), monday)

	if res.Days != 3 {
		t.Errorf("days = %d, want 3", res.Days)
	}
	if len(res.Sessions) != 6 {
		t.Errorf("got %d sessions, want 6", len(res.Sessions))
	}
	if res.Stop != StopIterationLimit {
		t.Errorf("stop = %q, want iteration_limit", res.Stop)
	}
	if len(res.Unscheduled) != 1 || res.Unscheduled[0].Hours != 94 {
		t.Errorf("unscheduled = %+v, want 94h of a", res.Unscheduled)
	}
}

func TestPack_SkipsUnknownTopics(t *testing.T) {
	monday := date(2024, time.January, 1)
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a"}}}}
	allocs := []Allocation{{TopicID: "ghost", Hours: 2}, {TopicID: "a", Hours: 1}}

	res := newTestPlanner(DefaultConfig()).Pack(allocs, subjects, packStudent(2, 2, monday), monday)

	if len(res.Sessions) != 1 || res.Sessions[0].TopicID != "a" {
		t.Fatalf("sessions = %+v, want one session for a", res.Sessions)
	}
}

func TestPack_SessionsChronological(t *testing.T) {
	monday := date(2024, time.January, 1)
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a"}, {ID: "b"}, {ID: "c"}}}}
	allocs := []Allocation{{TopicID: "a", Hours: 3.5}, {TopicID: "b", Hours: 2}, {TopicID: "c", Hours: 4}}

	res := newTestPlanner(DefaultConfig()).Pack(allocs, subjects, packStudent(2.5, 5, monday.AddDate(0, 0, 30)), monday)

	for i := 1; i < len(res.Sessions); i++ {
		prev, cur := res.Sessions[i-1], res.Sessions[i]
		if cur.Date.Before(prev.Date) {
			t.Fatalf("session %d dated before session %d", i, i-1)
		}
		if cur.Date.Equal(prev.Date) && cur.StartTime < prev.StartTime {
			t.Errorf("session %d slot %s before %s on the same day", i, cur.StartTime, prev.StartTime)
		}
	}
	perTopic := map[string]time.Duration{}
	for _, s := range res.Sessions {
		if s.Duration < 30*time.Minute || s.Duration > 60*time.Minute {
			t.Errorf("session duration %v out of bounds", s.Duration)
		}
		perTopic[s.TopicID] += s.Duration
	}
	if perTopic["a"] != 210*time.Minute || perTopic["b"] != 2*time.Hour || perTopic["c"] != 4*time.Hour {
		t.Errorf("per-topic totals = %v", perTopic)
	}
}

func TestPack_OversizedAllocation(t *testing.T) {
	monday := date(2024, time.January, 1)
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a"}}}}
	allocs := []Allocation{{TopicID: "a", SubjectID: "s", Hours: 3e6}}

	res := newTestPlanner(DefaultConfig()).Pack(allocs, subjects, packStudent(24, 24, monday.AddDate(0, 0, 9)), monday)

	if len(res.Sessions) != 240 {
		t.Errorf("got %d sessions, want 240", len(res.Sessions))
	}
	if res.Stop != StopDeadline {
		t.Errorf("stop = %q, want deadline", res.Stop)
	}
	if len(res.Dropped) != 0 {
		t.Errorf("dropped = %+v, want none", res.Dropped)
	}
	if len(res.Unscheduled) != 1 {
		t.Fatalf("unscheduled = %+v, want one topic", res.Unscheduled)
	}
	if got := res.Unscheduled[0].Hours; math.Abs(got-(3e6-240)) > 1e-3 {
		t.Errorf("unscheduled hours = %v, want %v", got, 3e6-240)
	}
}

func TestHoursToDuration(t *testing.T) {
	tests := []struct {
		hours float64
		want  time.Duration
	}{
		{-1, 0},
		{0, 0},
		{math.NaN(), 0},
		{1.5, 90 * time.Minute},
		{3e6, math.MaxInt64},
		{math.Inf(1), math.MaxInt64},
	}
	for _, tt := range tests {
		if got := hoursToDuration(tt.hours); got != tt.want {
			t.Errorf("hoursToDuration(%v) = %v, want %v", tt.hours, got, tt.want)
		}
	}
}

func TestPack_SubjectFromAllocation(t *testing.T) {
	monday := date(2024, time.January, 1)
	// Topic listed under "s" but owned by "other".
	subjects := []Subject{{ID: "s", Topics: []Topic{{ID: "a", SubjectID: "other"}, {ID: "b"}}}}
	allocs := []Allocation{
		{TopicID: "a", SubjectID: "other", Hours: 1},
		{TopicID: "b", Hours: 2},
	}

	res := newTestPlanner(DefaultConfig()).Pack(allocs, subjects, packStudent(1, 1, monday), monday)

	if len(res.Sessions) != 1 || res.Sessions[0].SubjectID != "other" {
		t.Fatalf("sessions = %+v, want one session for subject other", res.Sessions)
	}
	if len(res.Unscheduled) != 1 || res.Unscheduled[0].SubjectID != "s" {
		t.Errorf("unscheduled = %+v, want b under listing subject s", res.Unscheduled)
	}
}
