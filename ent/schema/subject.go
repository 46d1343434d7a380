package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Subject stores one subject of a student's catalog with its topics.
type Subject struct {
	ent.Schema
}

func (Subject) Fields() []ent.Field {
	return []ent.Field{
		field.String("student_id").
			NotEmpty(),
		field.String("subject_id").
			NotEmpty(),
		field.Int("position").
			Comment("Order in the student's subject list"),
		field.JSON("data", map[string]any{}).
			Comment("Subject with topics as JSON"),
	}
}

func (Subject) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "subject_id").
			Unique(),
	}
}
