// Package planner turns a student profile and a subject catalog into a
// day-by-day schedule of study sessions.
//
// The pipeline is fixed: count the available hours up to the target date,
// order topics so prerequisites come first, score them, allocate hours to
// each topic, then pack those hours greedily into sessions starting from
// the start date. Planner is pure apart from the clock and id generator.
package planner

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default tuning values.
const (
	DefaultMaxSession    = 60 * time.Minute
	DefaultMinSession    = 30 * time.Minute
	DefaultBufferFactor  = 0.8
	DefaultMinTopicHours = 1.0
	DefaultMaxDays       = 365
)

// ScheduleVersion is the version stamped on freshly generated schedules.
const ScheduleVersion = 1

// Config tunes the allocator and packer.
type Config struct {
	MaxSession    time.Duration // longest single session
	MinSession    time.Duration // shortest session worth scheduling
	BufferFactor  float64       // share of available time actually allocated
	MinTopicHours float64       // allocation floor per topic
	MaxDays       int           // hard ceiling on days packed per run
}

// DefaultConfig returns the standard planner tuning.
func DefaultConfig() Config {
	return Config{
		MaxSession:    DefaultMaxSession,
		MinSession:    DefaultMinSession,
		BufferFactor:  DefaultBufferFactor,
		MinTopicHours: DefaultMinTopicHours,
		MaxDays:       DefaultMaxDays,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxSession <= 0 {
		c.MaxSession = d.MaxSession
	}
	if c.MinSession <= 0 {
		c.MinSession = d.MinSession
	}
	if c.MinSession > c.MaxSession {
		c.MinSession = c.MaxSession
	}
	if c.BufferFactor <= 0 {
		c.BufferFactor = d.BufferFactor
	}
	if c.MinTopicHours <= 0 {
		c.MinTopicHours = d.MinTopicHours
	}
	if c.MaxDays <= 0 {
		c.MaxDays = d.MaxDays
	}
	return c
}

// Option customises a Planner.
type Option func(*Planner)

// WithClock sets the clock used for generation timestamps and the
// default start date.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithIDGenerator sets the generator for session and schedule ids.
func WithIDGenerator(newID func() string) Option {
	return func(p *Planner) { p.newID = newID }
}

// Planner generates schedules.
type Planner struct {
	cfg   Config
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// New creates a Planner. A nil logger discards output.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Planner{
		cfg:   cfg.withDefaults(),
		log:   logger,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the effective tuning.
func (p *Planner) Config() Config {
	return p.cfg
}

// Result carries the schedule and every intermediate stage that produced it.
type Result struct {
	Schedule    *Schedule
	Start       time.Time
	TotalHours  float64
	Ordering    Ordering
	Priorities  []Prioritized
	Allocations []Allocation
	Pack        PackResult
}

// GenerateSchedule runs the full pipeline and returns only the schedule.
func (p *Planner) GenerateSchedule(student StudentProfile, subjects []Subject, start time.Time) *Schedule {
	return p.Plan(student, subjects, start).Schedule
}

// Plan runs the full pipeline. A zero start means today.
func (p *Planner) Plan(student StudentProfile, subjects []Subject, start time.Time) *Result {
	if start.IsZero() {
		start = p.now()
	}
	start = midnight(start)

	total := AvailableHours(start, student.TargetDate, student.Availability)
	p.log.Debug("available hours",
		zap.String("student", student.ID),
		zap.Float64("hours", total),
		zap.Time("start", start),
		zap.Time("target", student.TargetDate),
	)

	ordering := OrderTopics(subjects)
	for _, e := range ordering.BrokenEdges {
		p.log.Warn("prerequisite cycle broken",
			zap.String("topic", e.TopicID),
			zap.String("prerequisite", e.PrerequisiteID),
		)
	}
	p.log.Debug("topics ordered", zap.Int("topics", len(ordering.Topics)))

	priorities := Prioritize(ordering.Topics, subjects)
	allocations := p.Allocate(priorities, total, subjects)
	packed := p.Pack(allocations, subjects, student, start)

	now := p.now()
	schedule := &Schedule{
		ID:          p.newID(),
		StudentID:   student.ID,
		Sessions:    packed.Sessions,
		GeneratedAt: now,
		UpdatedAt:   now,
		Version:     ScheduleVersion,
	}
	if schedule.Sessions == nil {
		schedule.Sessions = []StudySession{}
	}

	p.log.Debug("schedule generated",
		zap.String("student", student.ID),
		zap.Int("sessions", len(schedule.Sessions)),
		zap.Int("days", packed.Days),
		zap.String("stop", string(packed.Stop)),
	)

	return &Result{
		Schedule:    schedule,
		Start:       start,
		TotalHours:  total,
		Ordering:    ordering,
		Priorities:  priorities,
		Allocations: allocations,
		Pack:        packed,
	}
}
