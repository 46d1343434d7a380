package planner

import "time"

var importanceWeights = map[Importance]float64{
	ImportanceLow:      0.7,
	ImportanceMedium:   1.0,
	ImportanceHigh:     1.3,
	ImportanceCritical: 1.6,
}

var loadFactors = map[CognitiveLoad]float64{
	LoadLow:    0.8,
	LoadMedium: 1.0,
	LoadHigh:   1.3,
}

var bandStartHours = map[TimePreference]int{
	TimeMorning:   8,
	TimeAfternoon: 14,
	TimeEvening:   18,
	TimeNight:     21,
}

// weakBoost multiplies the priority of topics flagged as weak.
const weakBoost = 1.5

// ImportanceWeight returns the priority weight for a subject tier.
// Unknown tiers weigh 1.0.
func ImportanceWeight(i Importance) float64 {
	if w, ok := importanceWeights[i]; ok {
		return w
	}
	return 1.0
}

// LoadFactor returns the multiplier for a cognitive load tier.
// Unknown tiers count as medium.
func LoadFactor(l CognitiveLoad) float64 {
	if f, ok := loadFactors[l]; ok {
		return f
	}
	return 1.0
}

// ConfidenceFactor maps a 1..5 confidence level onto (0.2 .. 1.0];
// lower confidence gives a higher factor.
func ConfidenceFactor(level int) float64 {
	return float64(6-level) / 5
}

// BandStartHour returns the first hour of the preferred study band.
// Unknown preferences start in the morning.
func BandStartHour(p TimePreference) int {
	if h, ok := bandStartHours[p]; ok {
		return h
	}
	return bandStartHours[TimeMorning]
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
