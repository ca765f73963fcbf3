package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLLMRequestEvents = "llm_request_events"
	tableQuizEvents       = "quiz_events"
)

// Every event table starts with the same id/sequence/timestamp columns so
// rows from different tables can be ordered against each other.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, extra...)
}

func eventIndexes(prefix string, cols []*schema.Column) []*schema.Index {
	return []*schema.Index{
		{Name: prefix + "_sequence", Columns: []*schema.Column{cols[1]}},
		{Name: prefix + "_timestamp", Columns: []*schema.Column{cols[2]}},
	}
}

var (
	llmRequestEventColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)

	// llmRequestEventsTable records every LLM API call for cost tracking
	// and debugging.
	llmRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    llmRequestEventColumns,
		PrimaryKey: []*schema.Column{llmRequestEventColumns[0]},
		Indexes: append(eventIndexes("llmrequestevent", llmRequestEventColumns),
			&schema.Index{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventColumns[5]}},
			&schema.Index{Name: "llmrequestevent_model", Columns: []*schema.Column{llmRequestEventColumns[4]}},
		),
	}

	quizEventColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "category", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "total", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "message", Type: field.TypeString, Default: ""},
	)

	// quizEventsTable records quiz lifecycle transitions. Rows are never
	// read back into a running session.
	quizEventsTable = &schema.Table{
		Name:       tableQuizEvents,
		Columns:    quizEventColumns,
		PrimaryKey: []*schema.Column{quizEventColumns[0]},
		Indexes: append(eventIndexes("quizevent", quizEventColumns),
			&schema.Index{Name: "quizevent_session_id", Columns: []*schema.Column{quizEventColumns[3]}},
		),
	}

	tables = []*schema.Table{
		llmRequestEventsTable,
		quizEventsTable,
	}
)
