package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Schedule is the current generated schedule of a student. A new schedule
// replaces the old one and carries the next version number.
type Schedule struct {
	ent.Schema
}

func (Schedule) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("student_id").
			NotEmpty().
			Unique(),
		field.Int("version").
			Default(1),
		field.Time("generated_at"),
		field.Time("updated_at"),
	}
}
