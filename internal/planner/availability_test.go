package planner

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailableHours(t *testing.T) {
	avail := Availability{WeekdayHours: 3, WeekendHours: 6}
	monday := date(2024, time.January, 1)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{"single weekday", monday, monday, 3},
		{"single saturday", date(2024, time.January, 6), date(2024, time.January, 6), 6},
		{"full week inclusive", monday, monday.AddDate(0, 0, 7), 5*3 + 2*6 + 3},
		{"end before start", monday, monday.AddDate(0, 0, -1), 0},
		{"time of day ignored", monday.Add(22 * time.Hour), monday.Add(time.Hour), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvailableHours(tt.start, tt.end, avail)
			if got != tt.want {
				t.Errorf("AvailableHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHoursOn_Weekend(t *testing.T) {
	avail := Availability{WeekdayHours: 2, WeekendHours: 5}
	for d := 1; d <= 7; d++ {
		day := date(2024, time.January, d)
		want := 2.0
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			want = 5
		}
		if got := avail.HoursOn(day); got != want {
			t.Errorf("%s: got %v, want %v", day.Weekday(), got, want)
		}
	}
}

func TestTimeSlot(t *testing.T) {
	tests := []struct {
		scheduled time.Duration
		pref      TimePreference
		want      string
	}{
		{0, TimeMorning, "08:00"},
		{90 * time.Minute, TimeMorning, "09:00"},
		{2 * time.Hour, TimeAfternoon, "16:00"},
		{0, TimeEvening, "18:00"},
		{4 * time.Hour, TimeNight, "25:00"},
		{0, "dawn", "08:00"},
	}
	for _, tt := range tests {
		if got := TimeSlot(tt.scheduled, tt.pref); got != tt.want {
			t.Errorf("TimeSlot(%v, %q) = %q, want %q", tt.scheduled, tt.pref, got, tt.want)
		}
	}
}
