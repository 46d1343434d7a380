// Package app wires the planner, the store and the session tracker into
// the operations the CLI and the HTTP server expose.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/catalog"
	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/session"
	"github.com/abhisek/studyplan/internal/store"
)

// DefaultSnapshotKeep is how many progress snapshots are kept per student.
const DefaultSnapshotKeep = 30

// ErrNoStudent is returned when no student has been planned for yet.
var ErrNoStudent = errors.New("no student found, run `studyplan plan` first")

// Options configures an App. Store and Planner are required.
type Options struct {
	Store        *store.Store
	Planner      *planner.Planner
	Logger       *zap.Logger
	Clock        func() time.Time
	SnapshotKeep int
}

// App holds the shared services.
type App struct {
	store    *store.Store
	planner  *planner.Planner
	sessions *session.Service
	log      *zap.Logger
	now      func() time.Time
	keep     int
}

// New creates an App from opts.
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.SnapshotKeep <= 0 {
		opts.SnapshotKeep = DefaultSnapshotKeep
	}
	return &App{
		store:    opts.Store,
		planner:  opts.Planner,
		sessions: session.NewService(opts.Store.Schedules(), opts.Clock),
		log:      opts.Logger,
		now:      opts.Clock,
		keep:     opts.SnapshotKeep,
	}
}

// Now returns the app clock's current time.
func (a *App) Now() time.Time {
	return a.now()
}

// Plan is a student with its catalog and current schedule.
type Plan struct {
	Student  planner.StudentProfile
	Subjects []planner.Subject
	Schedule *planner.Schedule
}

// Generate checks the subjects, runs the planner and, unless dryRun is set,
// stores the student and the new schedule. The stored schedule replaces the
// previous one with the next version number. Subject warnings are logged,
// subject errors abort.
func (a *App) Generate(ctx context.Context, student planner.StudentProfile, subjects []planner.Subject, start time.Time, dryRun bool) (*planner.Result, catalog.Report, error) {
	report := catalog.Check(subjects)
	for _, w := range report.Warnings {
		a.log.Warn("subject check", zap.String("student", student.ID), zap.String("warning", w))
	}
	if err := report.Err(); err != nil {
		return nil, report, err
	}
	if start.IsZero() {
		start = a.now()
	}

	res := a.planner.Plan(student, subjects, start)
	a.log.Info("schedule planned",
		zap.String("student", student.ID),
		zap.Int("sessions", len(res.Schedule.Sessions)),
		zap.Float64("available_hours", res.TotalHours),
		zap.Float64("unscheduled_hours", res.Pack.UnscheduledHours()),
		zap.String("stop", string(res.Pack.Stop)),
		zap.Bool("dry_run", dryRun),
	)
	if dryRun {
		return res, report, nil
	}

	if err := a.store.Students().Save(ctx, student, subjects); err != nil {
		return nil, report, fmt.Errorf("save student: %w", err)
	}
	if err := a.store.Schedules().Save(ctx, res.Schedule); err != nil {
		return nil, report, fmt.Errorf("save schedule: %w", err)
	}
	if err := a.Snapshot(ctx, student.ID); err != nil {
		return nil, report, err
	}
	return res, report, nil
}

// Load returns a stored student with its subjects and schedule. An empty
// id loads the most recently planned student. Schedule is nil when the
// student has none.
func (a *App) Load(ctx context.Context, studentID string) (*Plan, error) {
	if studentID == "" {
		cur, err := a.store.Students().Current(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoStudent
		}
		if err != nil {
			return nil, fmt.Errorf("load current student: %w", err)
		}
		studentID = cur.ID
	}

	student, subjects, err := a.store.Students().Get(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student %s: %w", studentID, err)
	}
	p := &Plan{Student: student, Subjects: subjects}

	sched, err := a.store.Schedules().Latest(ctx, studentID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load schedule: %w", err)
	default:
		p.Schedule = sched
	}
	return p, nil
}

// Sessions lists a student's stored sessions.
func (a *App) Sessions(ctx context.Context, studentID string, filter store.SessionFilter) ([]planner.StudySession, error) {
	return a.store.Schedules().Sessions(ctx, studentID, filter)
}

// Dashboard gathers the figures shown by `today` and `stats`.
type Dashboard struct {
	Plan           *Plan
	Today          []planner.StudySession
	Recommendation *planner.StudySession
	Upcoming       []planner.StudySession
	Summary        progress.Summary
	Week           progress.WeekStats
	LastSnapshot   *store.Snapshot
}

// Dashboard computes the dashboard of a student at the app clock's now.
func (a *App) Dashboard(ctx context.Context, studentID string) (*Dashboard, error) {
	p, err := a.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	now := a.now()
	var sessions []planner.StudySession
	if p.Schedule != nil {
		sessions = p.Schedule.Sessions
	}

	d := &Dashboard{
		Plan:     p,
		Today:    progress.Today(sessions, now),
		Upcoming: progress.Upcoming(sessions, now, progress.DefaultUpcoming),
		Summary:  progress.Summarize(sessions, p.Subjects),
		Week:     progress.Weekly(sessions, progress.WeekStart(now)),
	}
	if rec, ok := progress.Recommend(sessions, now); ok {
		d.Recommendation = &rec
	}
	d.LastSnapshot, err = a.store.SnapshotRepo().Latest(ctx, p.Student.ID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return d, nil
}

// Coverage replays the allocation for a stored plan and compares it with
// the stored sessions. Allocations are not persisted, so the replay starts
// on the earliest session day, or the generation day when there are none.
func (a *App) Coverage(ctx context.Context, studentID string) (progress.CoverageReport, error) {
	p, err := a.Load(ctx, studentID)
	if err != nil {
		return progress.CoverageReport{}, err
	}
	if p.Schedule == nil {
		return progress.CoverageReport{}, nil
	}

	start := p.Schedule.GeneratedAt
	for i, s := range p.Schedule.Sessions {
		if i == 0 || s.Date.Before(start) {
			start = s.Date
		}
	}
	res := a.planner.Plan(p.Student, p.Subjects, start)
	return progress.Coverage(res.Allocations, p.Schedule.Sessions), nil
}

// Snapshot stores the student's current progress and prunes old snapshots.
func (a *App) Snapshot(ctx context.Context, studentID string) error {
	p, err := a.Load(ctx, studentID)
	if err != nil {
		return err
	}
	if p.Schedule == nil {
		return nil
	}
	sum := progress.Summarize(p.Schedule.Sessions, p.Subjects)
	snap := &store.Snapshot{
		StudentID: studentID,
		Timestamp: a.now(),
		Data:      progress.SnapshotData(sum, p.Schedule.Sessions, p.Schedule.Version),
	}
	if err := a.store.SnapshotRepo().Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := a.store.SnapshotRepo().Prune(ctx, studentID, a.keep); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// StartSession starts a stored session.
func (a *App) StartSession(ctx context.Context, id string) (planner.StudySession, error) {
	return a.afterTransition(ctx, id)(a.sessions.Start(ctx, id))
}

// CompleteSession completes a stored session with feedback.
func (a *App) CompleteSession(ctx context.Context, id string, feedback planner.Feedback, notes string) (planner.StudySession, error) {
	return a.afterTransition(ctx, id)(a.sessions.Complete(ctx, id, feedback, notes))
}

// MissSession marks a stored session missed.
func (a *App) MissSession(ctx context.Context, id string) (planner.StudySession, error) {
	return a.afterTransition(ctx, id)(a.sessions.Miss(ctx, id))
}

// RescheduleSession moves a stored session.
func (a *App) RescheduleSession(ctx context.Context, id string, date time.Time, startTime string) (planner.StudySession, error) {
	return a.afterTransition(ctx, id)(a.sessions.Reschedule(ctx, id, date, startTime))
}

// afterTransition logs a successful lifecycle change and refreshes the
// student's progress snapshot.
func (a *App) afterTransition(ctx context.Context, id string) func(planner.StudySession, error) (planner.StudySession, error) {
	return func(sess planner.StudySession, err error) (planner.StudySession, error) {
		if err != nil {
			return sess, err
		}
		_, studentID, err := a.store.Schedules().Session(ctx, id)
		if err != nil {
			return sess, fmt.Errorf("load session %s: %w", id, err)
		}
		a.log.Info("session updated",
			zap.String("session", id),
			zap.String("student", studentID),
			zap.String("status", string(sess.Status)),
		)
		if err := a.Snapshot(ctx, studentID); err != nil {
			return sess, err
		}
		return sess, nil
	}
}

// History returns the student's event log in sequence order: one event per
// generated schedule and one per session lifecycle change. A non-empty
// sessionID narrows it to that session.
func (a *App) History(ctx context.Context, studentID, sessionID string) ([]store.SessionEvent, error) {
	p, err := a.Load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	events, err := a.store.EventRepo().SessionEvents(ctx, store.QueryOpts{
		StudentID: p.Student.ID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return events, nil
}

// Reset deletes all stored plans, sessions, events and snapshots.
func (a *App) Reset(ctx context.Context) error {
	if err := a.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	a.log.Info("store reset")
	return nil
}
