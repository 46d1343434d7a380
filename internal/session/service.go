package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
)

// Service applies lifecycle changes to stored sessions. Every change is
// written together with a session event.
type Service struct {
	repo store.ScheduleRepo
	now  func() time.Time
}

// NewService creates a Service over the given schedule repository.
// A nil clock uses time.Now.
func NewService(repo store.ScheduleRepo, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, now: clock}
}

// Start begins the session with the given id.
func (s *Service) Start(ctx context.Context, id string) (planner.StudySession, error) {
	return s.apply(ctx, id, store.ActionStart, "", func(sess planner.StudySession) (planner.StudySession, error) {
		return Start(sess, s.now())
	})
}

// Complete finishes the session with the given id.
func (s *Service) Complete(ctx context.Context, id string, feedback planner.Feedback, notes string) (planner.StudySession, error) {
	return s.apply(ctx, id, store.ActionComplete, notes, func(sess planner.StudySession) (planner.StudySession, error) {
		return Complete(sess, feedback, notes, s.now())
	})
}

// Miss marks the session with the given id as missed.
func (s *Service) Miss(ctx context.Context, id string) (planner.StudySession, error) {
	return s.apply(ctx, id, store.ActionMiss, "", Miss)
}

// Reschedule moves the session with the given id to date at startTime.
func (s *Service) Reschedule(ctx context.Context, id string, date time.Time, startTime string) (planner.StudySession, error) {
	detail := fmt.Sprintf("%s %s", date.Format("2006-01-02"), startTime)
	return s.apply(ctx, id, store.ActionReschedule, detail, func(sess planner.StudySession) (planner.StudySession, error) {
		return Reschedule(sess, date, startTime)
	})
}

func (s *Service) apply(
	ctx context.Context,
	id, action, detail string,
	fn func(planner.StudySession) (planner.StudySession, error),
) (planner.StudySession, error) {
	sess, studentID, err := s.repo.Session(ctx, id)
	if err != nil {
		return planner.StudySession{}, fmt.Errorf("load session %s: %w", id, err)
	}

	next, err := fn(sess)
	if err != nil {
		return sess, err
	}

	ev := &store.SessionEventData{
		SessionID:  id,
		StudentID:  studentID,
		Action:     action,
		FromStatus: sess.Status,
		ToStatus:   next.Status,
		Feedback:   next.Feedback,
		Detail:     detail,
	}
	if action != store.ActionComplete {
		ev.Feedback = ""
	}
	if err := s.repo.UpdateSession(ctx, next, ev); err != nil {
		return sess, fmt.Errorf("save session %s: %w", id, err)
	}
	return next, nil
}
