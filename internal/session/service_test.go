package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/planner"
	"github.com/abhisek/studyplan/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedSchedule(t *testing.T, s *store.Store) {
	t.Helper()
	sched := &planner.Schedule{
		ID:          "sched-1",
		StudentID:   "stu-1",
		GeneratedAt: now,
		Sessions: []planner.StudySession{
			testSession(planner.StatusScheduled),
		},
	}
	require.NoError(t, s.Schedules().Save(context.Background(), sched))
}

func TestServiceLifecycle(t *testing.T) {
	s := openStore(t)
	seedSchedule(t, s)
	ctx := context.Background()

	clock := now
	svc := NewService(s.Schedules(), func() time.Time { return clock })

	started, err := svc.Start(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, planner.StatusInProgress, started.Status)

	clock = now.Add(50 * time.Minute)
	done, err := svc.Complete(ctx, "sess-1", planner.FeedbackMedium, "ok")
	require.NoError(t, err)
	assert.Equal(t, planner.StatusCompleted, done.Status)

	stored, studentID, err := s.Schedules().Session(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "stu-1", studentID)
	assert.Equal(t, planner.StatusCompleted, stored.Status)
	assert.Equal(t, planner.FeedbackMedium, stored.Feedback)
	require.NotNil(t, stored.ActualStart)
	require.NotNil(t, stored.ActualEnd)
	assert.Equal(t, 50*time.Minute, stored.ActualEnd.Sub(*stored.ActualStart))

	events, err := s.EventRepo().SessionEvents(ctx, store.QueryOpts{SessionID: "sess-1"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, store.ActionStart, events[0].Action)
	assert.Equal(t, planner.StatusScheduled, events[0].FromStatus)
	assert.Equal(t, planner.StatusInProgress, events[0].ToStatus)
	assert.Empty(t, events[0].Feedback)
	assert.Equal(t, store.ActionComplete, events[1].Action)
	assert.Equal(t, planner.FeedbackMedium, events[1].Feedback)
}

func TestServiceRejectsInvalidTransition(t *testing.T) {
	s := openStore(t)
	seedSchedule(t, s)
	ctx := context.Background()
	svc := NewService(s.Schedules(), func() time.Time { return now })

	_, err := svc.Miss(ctx, "sess-1")
	require.NoError(t, err)

	_, err = svc.Start(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	events, err := s.EventRepo().SessionEvents(ctx, store.QueryOpts{SessionID: "sess-1"})
	require.NoError(t, err)
	assert.Len(t, events, 1, "failed transition must not be logged")
}

func TestServiceReschedule(t *testing.T) {
	s := openStore(t)
	seedSchedule(t, s)
	ctx := context.Background()
	svc := NewService(s.Schedules(), nil)

	date := time.Date(2024, time.January, 9, 0, 0, 0, 0, time.Local)
	moved, err := svc.Reschedule(ctx, "sess-1", date, "09:00")
	require.NoError(t, err)
	assert.Equal(t, planner.StatusRescheduled, moved.Status)

	stored, _, err := s.Schedules().Session(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, date.Equal(stored.Date))
	assert.Equal(t, "09:00", stored.StartTime)

	events, err := s.EventRepo().SessionEvents(ctx, store.QueryOpts{SessionID: "sess-1"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-01-09 09:00", events[0].Detail)
}

func TestServiceUnknownSession(t *testing.T) {
	s := openStore(t)
	svc := NewService(s.Schedules(), nil)

	_, err := svc.Start(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
