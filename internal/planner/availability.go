package planner

import "time"

// AvailableHours sums the daily budget over every calendar day in
// [start, end], both ends inclusive. An end before start yields 0.
func AvailableHours(start, end time.Time, avail Availability) float64 {
	day := midnight(start)
	last := midnight(end.In(day.Location()))

	total := 0.0
	for !day.After(last) {
		total += avail.HoursOn(day)
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// midnight truncates t to the start of its calendar day in t's location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
