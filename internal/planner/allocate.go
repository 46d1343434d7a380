package planner

import (
	"math"

	"go.uber.org/zap"
)

// Allocation is the number of hours assigned to one topic.
type Allocation struct {
	TopicID   string
	SubjectID string
	Hours     float64
}

// Allocate assigns study hours to each prioritized topic, preserving the
// priority order.
//
//	hours = max(MinTopicHours, creditShare * confidenceFactor * loadFactor * BufferFactor)
//
// creditShare is the subject's share of total hours by credits. When no
// subject carries credits the hours are split equally across subjects.
// The share is applied to every topic of the subject, so a subject with
// many topics can be allocated more than its credit share in total.
func (p *Planner) Allocate(prioritized []Prioritized, totalHours float64, subjects []Subject) []Allocation {
	totalCredits := 0
	for _, s := range subjects {
		totalCredits += s.Credits
	}

	out := make([]Allocation, 0, len(prioritized))
	for _, pt := range prioritized {
		share := creditShare(pt.Subject.Credits, totalCredits, totalHours, len(subjects))
		hours := share *
			ConfidenceFactor(pt.Topic.Confidence) *
			LoadFactor(pt.Topic.CognitiveLoad) *
			p.cfg.BufferFactor
		hours = math.Max(p.cfg.MinTopicHours, hours)

		out = append(out, Allocation{
			TopicID:   pt.Topic.ID,
			SubjectID: pt.Topic.SubjectID,
			Hours:     hours,
		})
		p.log.Debug("topic allocated",
			zap.String("topic", pt.Topic.ID),
			zap.Float64("priority", pt.Priority),
			zap.Float64("hours", hours),
		)
	}
	return out
}

func creditShare(credits, totalCredits int, totalHours float64, subjectCount int) float64 {
	if totalCredits > 0 {
		return float64(credits) / float64(totalCredits) * totalHours
	}
	if subjectCount == 0 {
		return 0
	}
	return totalHours / float64(subjectCount)
}
