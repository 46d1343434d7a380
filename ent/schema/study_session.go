package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudySession is one scheduled block of study.
type StudySession struct {
	ent.Schema
}

func (StudySession) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("schedule_id").
			NotEmpty(),
		field.String("student_id").
			NotEmpty(),
		field.Int("position").
			Comment("Order within the schedule"),
		field.String("topic_id"),
		field.String("subject_id"),
		field.String("date").
			Comment("Calendar date, YYYY-MM-DD"),
		field.String("start_time").
			Comment("HH:00 slot label"),
		field.Int64("duration_ns").
			Comment("Planned length in nanoseconds, exact time.Duration"),
		field.String("type"),
		field.String("cognitive_load"),
		field.String("status"),
		field.Time("actual_start").
			Optional().
			Nillable(),
		field.Time("actual_end").
			Optional().
			Nillable(),
		field.String("feedback").
			Optional(),
		field.String("notes").
			Optional(),
	}
}

func (StudySession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("schedule_id", "position"),
		index.Fields("student_id", "date"),
		index.Fields("status"),
	}
}
