package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizEvent records a quiz lifecycle transition: start, finish, review,
// abandon or a failed generation.
type QuizEvent struct {
	ent.Schema
}

func (QuizEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Ticket ID of the session the event belongs to"),
		field.String("action"),
		field.String("category").
			Default(""),
		field.Int("count").
			Default(0).
			Comment("Questions requested"),
		field.Int("score").
			Default(0),
		field.Int("total").
			Default(0).
			Comment("Questions loaded"),
		field.String("message").
			Default("").
			Comment("Failure text for failed events"),
	}
}

func (QuizEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
