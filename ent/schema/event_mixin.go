package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin holds the fields every student event log row carries: the
// owning student, its place in the global sequence and when it happened.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global order across all students"),
		field.String("student_id").
			NotEmpty().
			Immutable(),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("Stored in UTC"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("student_id", "sequence"),
		index.Fields("timestamp"),
	}
}
