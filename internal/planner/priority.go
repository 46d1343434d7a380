package planner

import "sort"

// Prioritized pairs a topic with its owning subject and priority score.
type Prioritized struct {
	Topic    Topic
	Subject  Subject
	Priority float64
}

// Priority scores a topic. Weaker, heavier topics of more important
// subjects score higher.
func Priority(t Topic, s Subject) float64 {
	boost := 1.0
	if t.IsWeak {
		boost = weakBoost
	}
	return ConfidenceFactor(t.Confidence) * ImportanceWeight(s.Importance) * LoadFactor(t.CognitiveLoad) * boost
}

// Prioritize scores the ordered topics and sorts them by descending
// priority. Ties keep their prerequisite order.
//
// The score only decides the order in which topics enter the packer queue.
// It has no effect on how many hours a topic is allocated.
func Prioritize(ordered []Topic, subjects []Subject) []Prioritized {
	byID := make(map[string]Subject, len(subjects))
	for _, s := range subjects {
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = s
		}
	}

	out := make([]Prioritized, 0, len(ordered))
	for _, t := range ordered {
		s, ok := byID[t.SubjectID]
		if !ok {
			s = Subject{ID: t.SubjectID}
		}
		out = append(out, Prioritized{Topic: t, Subject: s, Priority: Priority(t, s)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}
