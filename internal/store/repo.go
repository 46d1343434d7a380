package store

import (
	"context"
	"time"

	"github.com/abhisek/studyplan/internal/planner"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	StudentID string    // only events of this student ("" = all)
	SessionID string    // only events of this session ("" = all)
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// SessionFilter narrows a session listing.
type SessionFilter struct {
	Status planner.SessionStatus // "" = any
	From   time.Time             // date >= From (zero = unbounded)
	To     time.Time             // date <= To (zero = unbounded)
}

// Session actions recorded in the event log.
const (
	ActionGenerate   = "generate"
	ActionStart      = "start"
	ActionComplete   = "complete"
	ActionMiss       = "miss"
	ActionReschedule = "reschedule"
)

// SessionEventData captures one session lifecycle change.
type SessionEventData struct {
	SessionID  string
	StudentID  string
	Action     string
	FromStatus planner.SessionStatus
	ToStatus   planner.SessionStatus
	Feedback   planner.Feedback
	Detail     string
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// SnapshotData captures a student's progress at a point in time.
type SnapshotData struct {
	Version           int            `json:"version"`
	ScheduleVersion   int            `json:"schedule_version"`
	TotalSessions     int            `json:"total_sessions"`
	Completed         int            `json:"completed"`
	Missed            int            `json:"missed"`
	HoursStudied      float64        `json:"hours_studied"`
	CompletionPercent int            `json:"completion_percent"`
	AverageDifficulty float64        `json:"average_difficulty,omitempty"`
	Subjects          map[string]int `json:"subjects,omitempty"` // subject id -> completion %
}

// Snapshot represents a point-in-time capture of progress.
type Snapshot struct {
	ID        int
	StudentID string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// StudentRepo stores student profiles and their subject catalogs.
type StudentRepo interface {
	// Save inserts or updates the student and replaces its subjects.
	Save(ctx context.Context, student planner.StudentProfile, subjects []planner.Subject) error

	// Get returns a student and its subjects, or ErrNotFound.
	Get(ctx context.Context, id string) (planner.StudentProfile, []planner.Subject, error)

	// Current returns the most recently updated student, or ErrNotFound.
	Current(ctx context.Context) (planner.StudentProfile, error)

	// List returns all students ordered by name.
	List(ctx context.Context) ([]planner.StudentProfile, error)
}

// ScheduleRepo stores generated schedules and their sessions.
type ScheduleRepo interface {
	// Save replaces the student's schedule. If one already exists the new
	// schedule gets the next version number. The stored version is written
	// back to sched.Version.
	Save(ctx context.Context, sched *planner.Schedule) error

	// Latest returns the student's current schedule, or ErrNotFound.
	Latest(ctx context.Context, studentID string) (*planner.Schedule, error)

	// Session returns one session and the id of its student, or ErrNotFound.
	Session(ctx context.Context, id string) (planner.StudySession, string, error)

	// Sessions lists a student's sessions in schedule order.
	Sessions(ctx context.Context, studentID string, filter SessionFilter) ([]planner.StudySession, error)

	// UpdateSession writes a session's date, slot, status and lifecycle
	// fields and appends ev to the event log in the same transaction.
	// ev may be nil.
	UpdateSession(ctx context.Context, sess planner.StudySession, ev *SessionEventData) error
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// SessionEvents returns events in sequence order.
	SessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is filled with the
	// current event sequence.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the student's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, studentID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of the student.
	Prune(ctx context.Context, studentID string, keep int) error
}
