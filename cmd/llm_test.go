package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizcraft/internal/store"
)

func TestFilterPurpose(t *testing.T) {
	events := []store.LLMEvent{
		{ID: 3, LLMRequestEventData: store.LLMRequestEventData{Purpose: "question-gen"}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "other"}},
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "question-gen"}},
	}

	got := filterPurpose(events, "question-gen", 0)
	assert.Len(t, got, 2)

	got = filterPurpose(events, "question-gen", 1)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 3, got[0].ID)
	}
}

func TestWriteLLMList(t *testing.T) {
	var out bytes.Buffer
	writeLLMList(&out, nil)
	assert.Equal(t, "No LLM events found.\n", out.String())

	out.Reset()
	writeLLMList(&out, []store.LLMEvent{{
		ID:        7,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen",
			InputTokens: 10, OutputTokens: 20, Success: false,
		},
	}})
	assert.Contains(t, out.String(), "gpt-4o-mini")
	assert.Contains(t, out.String(), "openai")
	assert.Contains(t, out.String(), "✗")
}

func TestWriteLLMEventUncaptured(t *testing.T) {
	var out bytes.Buffer
	writeLLMEvent(&out, &store.LLMEvent{ID: 1, LLMRequestEventData: store.LLMRequestEventData{
		Model: "mock", ErrorMessage: "boom", RequestBody: "{}",
	}})
	assert.Contains(t, out.String(), "Error:     boom")
	assert.Contains(t, out.String(), "{}")
	assert.Contains(t, out.String(), "(not captured)")
}

func TestWriteLLMStats(t *testing.T) {
	var out bytes.Buffer
	writeLLMStats(&out, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", out.String())

	out.Reset()
	writeLLMStats(&out,
		[]store.UsageByPurpose{{Purpose: "question-gen", Calls: 2, InputTokens: 1_000_000, OutputTokens: 1_000_000}},
		[]store.UsageByModel{
			{Model: "gpt-4o-mini", Calls: 1, InputTokens: 1_000_000, OutputTokens: 1_000_000},
			{Model: "mystery-model", Calls: 1},
		},
	)
	s := out.String()
	assert.Contains(t, s, "$0.75")
	assert.Contains(t, s, "TOTAL (partial)")
	assert.Contains(t, s, "Pricing unavailable for: mystery-model")
}
