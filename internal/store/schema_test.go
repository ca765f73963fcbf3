package store

import (
	"testing"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"

	entschema "github.com/abhisek/quizcraft/ent/schema"
)

// The tables are declared by hand for the migrator; they must stay in step
// with the ent schema definitions.
func TestTablesMatchEntSchema(t *testing.T) {
	tests := []struct {
		table  *schema.Table
		fields []ent.Field
	}{
		{llmRequestEventsTable, entschema.LLMRequestEvent{}.Fields()},
		{quizEventsTable, entschema.QuizEvent{}.Fields()},
	}
	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			fields := append(entschema.EventMixin{}.Fields(), tt.fields...)
			cols := tt.table.Columns[1:] // id is implicit in ent
			if len(cols) != len(fields) {
				t.Fatalf("table has %d columns, schema has %d fields", len(cols), len(fields))
			}
			for i, f := range fields {
				d := f.Descriptor()
				if cols[i].Name != d.Name {
					t.Errorf("column %d = %q, schema field %q", i, cols[i].Name, d.Name)
				}
				if cols[i].Type != d.Info.Type {
					t.Errorf("column %q type = %v, schema %v", d.Name, cols[i].Type, d.Info.Type)
				}
			}
		})
	}
}
