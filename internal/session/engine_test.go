package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/store"
)

type stubGenerator struct {
	questions []quiz.Question
	err       error

	mu    sync.Mutex
	calls []string
}

func (g *stubGenerator) Generate(ctx context.Context, category string, count int) ([]quiz.Question, error) {
	g.mu.Lock()
	g.calls = append(g.calls, category)
	g.mu.Unlock()
	return g.questions, g.err
}

type memRecorder struct {
	events []store.QuizEventData
	err    error
}

func (r *memRecorder) AppendQuizEvent(_ context.Context, data store.QuizEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *memRecorder) actions() []string {
	var out []string
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

func newTestEngine(gen Generator) (*Engine, *memRecorder) {
	rec := &memRecorder{}
	return NewEngine(gen, EngineConfig{Recorder: rec}), rec
}

// start requests a quiz and applies its completion synchronously.
func start(t *testing.T, e *Engine, category string, count int) {
	t.Helper()
	ticket, ok := e.RequestQuiz(category, count)
	require.True(t, ok, "RequestQuiz rejected")
	require.True(t, e.Complete(e.Fetch(context.Background(), ticket)))
}

func TestEngine_RequestQuizValidation(t *testing.T) {
	tests := []struct {
		name     string
		category string
		count    int
	}{
		{"blank category", "   ", 5},
		{"empty category", "", 5},
		{"zero count", "Science", 0},
		{"negative count", "Science", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(&stubGenerator{questions: twoQuestions()})
			_, ok := e.RequestQuiz(tt.category, tt.count)
			assert.False(t, ok)

			snap := e.Snapshot()
			assert.Equal(t, ModeSetup, snap.Mode)
			assert.False(t, snap.Loading)
			assert.Equal(t, "Please enter a category and select the number of questions.", snap.Message)
		})
	}
}

func TestEngine_FullQuiz(t *testing.T) {
	gen := &stubGenerator{questions: twoQuestions()}
	e, rec := newTestEngine(gen)

	ticket, ok := e.RequestQuiz("  Science ", 2)
	require.True(t, ok)
	assert.Equal(t, "Science", ticket.Category)
	assert.NotEmpty(t, ticket.ID)

	snap := e.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, ModeSetup, snap.Mode)

	// Loading blocks a second request.
	_, ok = e.RequestQuiz("History", 3)
	assert.False(t, ok)

	require.True(t, e.Complete(e.Fetch(context.Background(), ticket)))
	assert.Equal(t, []string{"Science"}, gen.calls)

	snap = e.Snapshot()
	assert.Equal(t, ModePlaying, snap.Mode)
	assert.False(t, snap.Loading)
	assert.Equal(t, 1, snap.Number)
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, "What color is the sky?", snap.Prompt)
	assert.False(t, snap.CanAdvance)
	assert.Equal(t, "Next Question", snap.AdvanceLabel())
	assert.Equal(t, ticket.ID, e.Session().ID)

	assert.False(t, e.Advance(), "advance before answering")
	require.True(t, e.SelectAnswer("Blue"))

	snap = e.Snapshot()
	assert.True(t, snap.CanAdvance)
	assert.Equal(t, "Blue", snap.Selected)
	assert.Equal(t, []OptionView{{Text: "Red"}, {Text: "Blue", Selected: true}}, snap.Options)

	require.True(t, e.Advance())
	assert.True(t, e.Snapshot().IsLast)
	assert.Equal(t, "Finish Quiz", e.Snapshot().AdvanceLabel())
	require.True(t, e.SelectAnswer("3"))
	require.True(t, e.Advance())

	result, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, quiz.Result{Score: 1, Total: 2}, result)
	assert.Equal(t, ModeShowingResults, e.Snapshot().Mode)

	assert.Equal(t, []string{ActionStart, ActionFinish}, rec.actions())
	finish := rec.events[1]
	assert.Equal(t, 1, finish.Score)
	assert.Equal(t, 2, finish.Total)
	assert.Equal(t, "Science", finish.Category)
	assert.Equal(t, ticket.ID, finish.SessionID)
}

func TestEngine_Review(t *testing.T) {
	e, rec := newTestEngine(&stubGenerator{questions: twoQuestions()})
	start(t, e, "Science", 2)

	e.SelectAnswer("Red")
	e.Advance()
	e.SelectAnswer("4")
	e.Advance()

	require.True(t, e.Review())
	snap := e.Snapshot()
	assert.Equal(t, ModeReviewingAnswers, snap.Mode)
	assert.True(t, snap.CanAdvance)
	assert.Equal(t, []OptionView{
		{Text: "Red", Selected: true},
		{Text: "Blue", Correct: true, Disabled: true},
	}, snap.Options)

	assert.False(t, e.SelectAnswer("Blue"), "selection accepted in review")
	require.True(t, e.Advance())
	assert.Equal(t, "Finish Review", e.Snapshot().AdvanceLabel())
	require.True(t, e.Advance())

	assert.Equal(t, ModeShowingResults, e.Snapshot().Mode)
	assert.Equal(t, 1, e.Snapshot().Score)

	// Finishing a review does not log a second finish.
	assert.Equal(t, []string{ActionStart, ActionFinish, ActionReview}, rec.actions())
}

func TestEngine_StaleCompletionAfterRestart(t *testing.T) {
	e, rec := newTestEngine(&stubGenerator{questions: twoQuestions()})

	ticket, ok := e.RequestQuiz("Science", 2)
	require.True(t, ok)
	completion := e.Fetch(context.Background(), ticket)

	e.Restart()
	before := e.Snapshot()

	assert.False(t, e.Complete(completion), "stale completion applied")
	assert.Equal(t, before, e.Snapshot())
	assert.Equal(t, ModeSetup, e.Snapshot().Mode)
	assert.Empty(t, rec.events)
}

func TestEngine_StaleCompletionAfterNewerRequest(t *testing.T) {
	e, _ := newTestEngine(&stubGenerator{questions: twoQuestions()})

	old, ok := e.RequestQuiz("Science", 2)
	require.True(t, ok)
	e.Restart()
	current, ok := e.RequestQuiz("History", 2)
	require.True(t, ok)

	assert.False(t, e.Complete(Completion{Ticket: old, Questions: twoQuestions()}))
	assert.True(t, e.Snapshot().Loading)

	require.True(t, e.Complete(e.Fetch(context.Background(), current)))
	assert.Equal(t, "History", e.Session().Category)

	// A completion applied twice is dropped the second time.
	assert.False(t, e.Complete(Completion{Ticket: current, Questions: twoQuestions()}))
}

func TestEngine_GenerationFailure(t *testing.T) {
	tests := []struct {
		name    string
		gen     *stubGenerator
		wantMsg string
	}{
		{
			name:    "provider error",
			gen:     &stubGenerator{err: errors.New("no response from API")},
			wantMsg: "Failed to fetch questions: no response from API",
		},
		{
			name:    "empty result",
			gen:     &stubGenerator{},
			wantMsg: "Failed to fetch questions: no questions to load",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(tt.gen)
			start(t, e, "Science", 2)

			snap := e.Snapshot()
			assert.Equal(t, ModeSetup, snap.Mode)
			assert.False(t, snap.Loading)
			assert.Equal(t, tt.wantMsg, snap.Message)
			assert.Equal(t, []string{ActionFailed}, rec.actions())

			// The user can try again.
			tt.gen.err = nil
			tt.gen.questions = twoQuestions()
			start(t, e, "Science", 2)
			assert.Equal(t, ModePlaying, e.Snapshot().Mode)
			assert.Empty(t, e.Snapshot().Message)
		})
	}
}

func TestEngine_Reattempt(t *testing.T) {
	gen := &stubGenerator{questions: twoQuestions()}
	e, rec := newTestEngine(gen)

	_, ok := e.Reattempt()
	assert.False(t, ok, "reattempt from setup")

	start(t, e, "Science", 2)
	first := e.Session().ID
	e.SelectAnswer("Blue")

	ticket, ok := e.Reattempt()
	require.True(t, ok)
	assert.Equal(t, "Science", ticket.Category)
	assert.Equal(t, 2, ticket.Count)

	assert.True(t, e.Snapshot().Loading)
	assert.False(t, e.SelectAnswer("Red"), "answer accepted while loading")
	assert.False(t, e.Advance(), "advance accepted while loading")
	assert.True(t, e.Snapshot().Options[0].Disabled)
	_, ok = e.Reattempt()
	assert.False(t, ok, "reattempt while loading")

	require.True(t, e.Complete(e.Fetch(context.Background(), ticket)))
	s := e.Session()
	assert.NotEqual(t, first, s.ID)
	assert.Equal(t, ModePlaying, s.Mode)
	assert.Zero(t, s.Score)
	assert.Empty(t, s.Recorded)
	assert.Equal(t, []string{ActionStart, ActionAbandon, ActionStart}, rec.actions())
}

func TestEngine_ReattemptFromResults(t *testing.T) {
	e, _ := newTestEngine(&stubGenerator{questions: twoQuestions()})
	start(t, e, "Science", 2)
	e.SelectAnswer("Blue")
	e.Advance()
	e.SelectAnswer("4")
	e.Advance()

	ticket, ok := e.Reattempt()
	require.True(t, ok)
	require.True(t, e.Complete(e.Fetch(context.Background(), ticket)))
	assert.Equal(t, ModePlaying, e.Snapshot().Mode)
	assert.Zero(t, e.Snapshot().Score)
}

func TestEngine_ReattemptFailureFallsBackToSetup(t *testing.T) {
	gen := &stubGenerator{questions: twoQuestions()}
	e, _ := newTestEngine(gen)
	start(t, e, "Science", 2)

	gen.questions = nil
	gen.err = errors.New("no questions generated")
	ticket, ok := e.Reattempt()
	require.True(t, ok)
	require.True(t, e.Complete(e.Fetch(context.Background(), ticket)))

	snap := e.Snapshot()
	assert.Equal(t, ModeSetup, snap.Mode)
	assert.Equal(t, "Failed to fetch questions: no questions generated", snap.Message)
	assert.Zero(t, snap.Total)
	assert.Nil(t, snap.Options)
}

func TestEngine_RestartClearsEverything(t *testing.T) {
	e, rec := newTestEngine(&stubGenerator{questions: twoQuestions()})
	start(t, e, "Science", 2)
	e.SelectAnswer("Blue")

	e.Restart()
	snap := e.Snapshot()
	assert.Equal(t, Snapshot{Mode: ModeSetup}, snap)
	assert.Equal(t, []string{ActionStart, ActionAbandon}, rec.actions())

	_, ok := e.Reattempt()
	assert.False(t, ok, "reattempt after restart")
}

func TestEngine_FetchTimeout(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, _ string, _ int) ([]quiz.Question, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	e := NewEngine(gen, EngineConfig{Timeout: 10 * time.Millisecond})

	ticket, ok := e.RequestQuiz("Science", 2)
	require.True(t, ok)
	c := e.Fetch(context.Background(), ticket)
	require.ErrorIs(t, c.Err, context.DeadlineExceeded)

	require.True(t, e.Complete(c))
	assert.Contains(t, e.Snapshot().Message, "Failed to fetch questions:")
}

type generatorFunc func(ctx context.Context, category string, count int) ([]quiz.Question, error)

func (f generatorFunc) Generate(ctx context.Context, category string, count int) ([]quiz.Question, error) {
	return f(ctx, category, count)
}

func TestEngine_RecorderErrorIsNotFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	e := NewEngine(&stubGenerator{questions: twoQuestions()}, EngineConfig{Recorder: rec})
	start(t, e, "Science", 2)
	assert.Equal(t, ModePlaying, e.Snapshot().Mode)
}

func TestEngine_OnChange(t *testing.T) {
	e, _ := newTestEngine(&stubGenerator{questions: twoQuestions()})

	var modes []Mode
	var loading []bool
	e.OnChange(func(s Snapshot) {
		modes = append(modes, s.Mode)
		loading = append(loading, s.Loading)
	})

	start(t, e, "Science", 2)
	e.SelectAnswer("Blue")
	e.SelectAnswer("Purple") // ignored, no snapshot

	assert.Equal(t, []Mode{ModeSetup, ModePlaying, ModePlaying}, modes)
	assert.Equal(t, []bool{true, false, false}, loading)
}

func TestEngine_Subscribe(t *testing.T) {
	e, _ := newTestEngine(&stubGenerator{questions: twoQuestions()})

	ch, cancel := e.Subscribe()
	initial := <-ch
	assert.Equal(t, ModeSetup, initial.Mode)

	start(t, e, "Science", 2)
	<-ch // loading
	playing := <-ch
	assert.Equal(t, ModePlaying, playing.Mode)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open, "channel not closed by cancel")

	// Emitting after cancel must not panic.
	e.SelectAnswer("Blue")
}

func TestEngine_SlowSubscriberSeesLatest(t *testing.T) {
	e, _ := newTestEngine(&stubGenerator{questions: twoQuestions()})
	ch, cancel := e.Subscribe()
	defer cancel()

	start(t, e, "Science", 2)
	for range 20 {
		e.SelectAnswer("Red")
		e.SelectAnswer("Blue")
	}

	var last Snapshot
	for {
		select {
		case s := <-ch:
			last = s
			continue
		default:
		}
		break
	}
	assert.Equal(t, "Blue", last.Selected)
	assert.Equal(t, 1, last.Score)
}
