package planner

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// StopReason explains why packing ended.
type StopReason string

const (
	StopComplete       StopReason = "complete"
	StopDeadline       StopReason = "deadline"
	StopIterationLimit StopReason = "iteration_limit"
)

// PackResult is the output of Pack.
type PackResult struct {
	Sessions []StudySession
	// Unscheduled holds the balance of topics still queued when packing
	// stopped, in queue order.
	Unscheduled []Allocation
	// Dropped holds balances retired because they were shorter than the
	// minimum session.
	Dropped []Allocation
	Days    int
	Stop    StopReason
}

// UnscheduledHours sums the hours left in Unscheduled.
func (r PackResult) UnscheduledHours() float64 {
	total := 0.0
	for _, a := range r.Unscheduled {
		total += a.Hours
	}
	return total
}

type queueItem struct {
	topicID   string
	subjectID string
	load      CognitiveLoad
	remaining time.Duration
	// excess holds hours beyond the largest time.Duration.
	excess float64
}

// Pack fills days from start up to the student's target date with sessions,
// taking topics from the allocation queue in order.
//
// Each session is at most MaxSession and at least MinSession long. When the
// day's remaining budget cannot hold a minimum session, packing moves to the
// next day. When the head topic's own balance is below MinSession it can
// never be scheduled, so it is retired into Dropped and the next topic is
// tried the same day. Allocations for unknown topics are skipped. Sessions
// carry the allocation's subject id, or the listing subject's when it is empty.
func (p *Planner) Pack(allocs []Allocation, subjects []Subject, student StudentProfile, start time.Time) PackResult {
	known := make(map[string]queueItem)
	for _, s := range subjects {
		for _, t := range s.Topics {
			if _, dup := known[t.ID]; !dup {
				known[t.ID] = queueItem{topicID: t.ID, subjectID: s.ID, load: t.CognitiveLoad}
			}
		}
	}

	queue := make([]queueItem, 0, len(allocs))
	for _, a := range allocs {
		item, ok := known[a.TopicID]
		if !ok {
			p.log.Debug("allocation for unknown topic skipped", zap.String("topic", a.TopicID))
			continue
		}
		if a.SubjectID != "" {
			item.subjectID = a.SubjectID
		}
		item.remaining = hoursToDuration(a.Hours)
		if item.remaining == math.MaxInt64 {
			item.excess = a.Hours - item.remaining.Hours()
		}
		queue = append(queue, item)
	}

	var res PackResult
	head := 0
	day := midnight(start)
	deadline := midnight(student.TargetDate.In(day.Location()))

	for head < len(queue) && !day.After(deadline) && res.Days < p.cfg.MaxDays {
		res.Days++
		budget := hoursToDuration(student.Availability.HoursOn(day))
		var used time.Duration

		for used < budget && head < len(queue) {
			cur := &queue[head]
			if cur.remaining < p.cfg.MinSession {
				if cur.remaining > 0 {
					res.Dropped = append(res.Dropped, cur.allocation())
				}
				head++
				continue
			}

			d := min(p.cfg.MaxSession, budget-used, cur.remaining)
			if d < p.cfg.MinSession {
				break
			}

			res.Sessions = append(res.Sessions, StudySession{
				ID:            p.newID(),
				TopicID:       cur.topicID,
				SubjectID:     cur.subjectID,
				Date:          day,
				StartTime:     TimeSlot(used, student.PreferredTime),
				Duration:      d,
				Type:          SessionLearning,
				CognitiveLoad: cur.load,
				Status:        StatusScheduled,
			})
			used += d
			cur.remaining -= d
			if cur.remaining <= 0 {
				head++
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	switch {
	case head >= len(queue):
		res.Stop = StopComplete
	case day.After(deadline):
		res.Stop = StopDeadline
	default:
		res.Stop = StopIterationLimit
	}
	for _, item := range queue[head:] {
		res.Unscheduled = append(res.Unscheduled, item.allocation())
	}
	return res
}

func (q queueItem) allocation() Allocation {
	return Allocation{TopicID: q.topicID, SubjectID: q.subjectID, Hours: q.remaining.Hours() + q.excess}
}

// hoursToDuration converts hours, saturating at the largest time.Duration.
func hoursToDuration(h float64) time.Duration {
	if !(h > 0) {
		return 0
	}
	ns := h * float64(time.Hour)
	if ns >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return time.Duration(ns)
}
