package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records a study session lifecycle change.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Study session the event applies to"),
		field.String("action").
			NotEmpty().
			Comment("start, complete, miss or reschedule"),
		field.String("from_status").
			Default(""),
		field.String("to_status").
			Default(""),
		field.String("feedback").
			Optional().
			Comment("Reported difficulty (on complete only)"),
		field.String("detail").
			Optional().
			Comment("New date and slot (on reschedule only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
