package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Student holds the profile the planner schedules for.
type Student struct {
	ent.Schema
}

func (Student) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("name"),
		field.String("email").
			Optional(),
		field.String("branch").
			Optional(),
		field.Float("weekday_hours"),
		field.Float("weekend_hours"),
		field.String("preferred_time"),
		field.String("target_date").
			Comment("Calendar date, YYYY-MM-DD"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now),
	}
}

func (Student) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("updated_at"),
	}
}
