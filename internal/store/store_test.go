package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpenFileDB.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quizcraft.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	if err := s.EventRepo().AppendQuizEvent(context.Background(), QuizEventData{SessionID: "s", Action: "start"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	// Reopening migrates idempotently and keeps both data and sequence.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if err := s.EventRepo().AppendQuizEvent(context.Background(), QuizEventData{SessionID: "s", Action: "finish"}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	events, err := s.EventRepo().QueryQuizEvents(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Sequence != 2 || events[1].Sequence != 1 {
		t.Errorf("sequences = %d,%d, want 2,1", events[0].Sequence, events[1].Sequence)
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "x", "custom.db")
		t.Setenv("QUIZCRAFT_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
		if _, err := os.Stat(filepath.Dir(want)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("QUIZCRAFT_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		want := filepath.Join(dir, "quizcraft", "quizcraft.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendQuizEvent(ctx, QuizEventData{SessionID: "a", Action: "start"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "question-gen", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendQuizEvent(ctx, QuizEventData{SessionID: "a", Action: "finish"}); err != nil {
		t.Fatal(err)
	}

	quiz, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}

	if len(quiz) != 2 || len(llmEvents) != 1 {
		t.Fatalf("got %d quiz / %d llm events", len(quiz), len(llmEvents))
	}
	if quiz[1].Sequence != 1 || llmEvents[0].Sequence != 2 || quiz[0].Sequence != 3 {
		t.Errorf("sequences = quiz %d,%d llm %d", quiz[1].Sequence, quiz[0].Sequence, llmEvents[0].Sequence)
	}
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	want := LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-20250514",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 340,
		LatencyMs:    812,
		Success:      false,
		ErrorMessage: "rate limited",
		RequestBody:  `{"messages":[]}`,
		ResponseBody: "1. Q\na) A",
	}
	if err := repo.AppendLLMRequest(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.LLMRequestEventData != want {
		t.Errorf("data = %+v, want %+v", got.LLMRequestEventData, want)
	}
	if got.Timestamp.Before(before) {
		t.Errorf("timestamp %v before %v", got.Timestamp, before)
	}

	e, err := repo.GetLLMEvent(ctx, got.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.ResponseBody != want.ResponseBody {
		t.Fatalf("get returned %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, got.ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := repo.AppendQuizEvent(ctx, QuizEventData{
			SessionID: "s1",
			Action:    "start",
			Category:  fmt.Sprintf("cat-%d", i),
			Count:     i + 1,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"all newest first", QueryOpts{}, []int64{5, 4, 3, 2, 1}},
		{"limit", QueryOpts{Limit: 2}, []int64{5, 4}},
		{"after", QueryOpts{After: 3}, []int64{5, 4}},
		{"before", QueryOpts{Before: 3}, []int64{2, 1}},
		{"window", QueryOpts{After: 1, Before: 5, Limit: 2}, []int64{4, 3}},
		{"future from", QueryOpts{From: time.Now().Add(time.Hour)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryQuizEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []int64
			for _, e := range events {
				got = append(got, e.Sequence)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("sequences = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 100, OutputTokens: 200, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 50, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "explain", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: false},
	}
	for _, r := range rows {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	wantPurpose := []UsageByPurpose{
		{Purpose: "explain", Calls: 1, InputTokens: 10, OutputTokens: 5, AvgLatencyMs: 50},
		{Purpose: "question-gen", Calls: 2, InputTokens: 150, OutputTokens: 220, AvgLatencyMs: 200},
	}
	if fmt.Sprint(byPurpose) != fmt.Sprint(wantPurpose) {
		t.Errorf("by purpose = %+v, want %+v", byPurpose, wantPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	wantModel := []UsageByModel{
		{Model: "gpt-4o", Calls: 1, InputTokens: 10, OutputTokens: 5},
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 150, OutputTokens: 220},
	}
	if fmt.Sprint(byModel) != fmt.Sprint(wantModel) {
		t.Errorf("by model = %+v, want %+v", byModel, wantModel)
	}
}

func TestUsageEmpty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 0 {
		t.Errorf("expected no usage rows, got %v", stats)
	}
}
