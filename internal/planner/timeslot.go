package planner

import (
	"fmt"
	"time"
)

// TimeSlot returns the "HH:00" label for a session that starts after
// `scheduled` has already been booked on the same day. The hour is the
// band start plus the whole hours already scheduled. It is not wrapped
// past 23, so long night days can produce labels such as "25:00".
func TimeSlot(scheduled time.Duration, pref TimePreference) string {
	hour := BandStartHour(pref) + int(scheduled/time.Hour)
	return fmt.Sprintf("%02d:00", hour)
}
