package session

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/store"
)

// Messages shown to the user.
const (
	msgInvalidSetup = "Please enter a category and select the number of questions."
	msgFetchFailed  = "Failed to fetch questions: "
)

// Quiz event actions.
const (
	ActionStart   = "start"
	ActionFinish  = "finish"
	ActionReview  = "review"
	ActionAbandon = "abandon"
	ActionFailed  = "failed"
)

// DefaultFetchTimeout bounds a single generation request.
const DefaultFetchTimeout = 90 * time.Second

// Generator produces questions for a category.
type Generator interface {
	Generate(ctx context.Context, category string, count int) ([]quiz.Question, error)
}

// EventRecorder receives quiz lifecycle events. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendQuizEvent(ctx context.Context, data store.QuizEventData) error
}

// Ticket tags an outstanding generation request with the engine generation
// that issued it.
type Ticket struct {
	Generation uint64
	ID         string
	Category   string
	Count      int
}

// Completion is the outcome of Fetch, applied with Complete.
type Completion struct {
	Ticket    Ticket
	Questions []quiz.Question
	Err       error
}

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Timeout bounds each Fetch. Zero means DefaultFetchTimeout.
	Timeout time.Duration

	// Recorder, if set, receives quiz events.
	Recorder EventRecorder
}

// Engine drives the one active Session. It is not safe for concurrent use:
// a single owner calls every method except Fetch, which may run on any
// goroutine, and the cancel funcs returned by Subscribe.
type Engine struct {
	gen    Generator
	config EngineConfig

	session  *Session
	category string
	count    int

	generation uint64
	loading    bool
	message    string

	listeners []func(Snapshot)

	mu          sync.Mutex
	subscribers map[chan Snapshot]struct{}
}

// NewEngine returns an engine in Setup.
func NewEngine(gen Generator, cfg EngineConfig) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	return &Engine{
		gen:         gen,
		config:      cfg,
		session:     New(),
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// Session returns the active session. Callers must not modify it.
func (e *Engine) Session() *Session { return e.session }

// Snapshot returns the current render state.
func (e *Engine) Snapshot() Snapshot { return e.snapshot() }

// RequestQuiz starts generating a quiz from Setup. A blank category or a
// count below one is rejected with a message.
func (e *Engine) RequestQuiz(category string, count int) (Ticket, bool) {
	if e.loading || e.session.Mode != ModeSetup {
		return Ticket{}, false
	}

	category = strings.TrimSpace(category)
	if category == "" || count < 1 {
		e.message = msgInvalidSetup
		e.emit()
		return Ticket{}, false
	}

	e.category = category
	e.count = count
	return e.begin(), true
}

// Reattempt regenerates questions for the stored category and count.
func (e *Engine) Reattempt() (Ticket, bool) {
	if e.loading || e.category == "" || e.session.Mode == ModeSetup {
		return Ticket{}, false
	}
	e.abandonIfPlaying()
	return e.begin(), true
}

func (e *Engine) begin() Ticket {
	e.generation++
	e.loading = true
	e.message = ""
	t := Ticket{
		Generation: e.generation,
		ID:         uuid.NewString(),
		Category:   e.category,
		Count:      e.count,
	}
	e.emit()
	return t
}

// Fetch runs the generator for t. It touches no engine state beyond the
// generator and timeout, so it may run off the owning goroutine.
func (e *Engine) Fetch(ctx context.Context, t Ticket) Completion {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	questions, err := e.gen.Generate(ctx, t.Category, t.Count)
	return Completion{Ticket: t, Questions: questions, Err: err}
}

// Complete applies a finished fetch. Completions for a generation other
// than the current outstanding one are dropped and false is returned.
func (e *Engine) Complete(c Completion) bool {
	if !e.loading || c.Ticket.Generation != e.generation {
		return false
	}
	e.loading = false

	next := New()
	next.ID = c.Ticket.ID
	next.Category = c.Ticket.Category
	next.Count = c.Ticket.Count

	err := c.Err
	if err == nil {
		err = next.Load(c.Questions)
	}
	if err != nil {
		e.session = New()
		e.message = msgFetchFailed + err.Error()
		e.record(ActionFailed, next, e.message)
		e.emit()
		return true
	}

	e.session = next
	e.record(ActionStart, next, "")
	e.emit()
	return true
}

// SelectAnswer records text as the answer to the current question.
func (e *Engine) SelectAnswer(text string) bool {
	if e.loading || !e.session.RecordAnswer(text) {
		return false
	}
	e.emit()
	return true
}

// Advance moves to the next question, or to results after the last one.
func (e *Engine) Advance() bool {
	if e.loading {
		return false
	}
	from := e.session.Mode
	if !e.session.Advance() {
		return false
	}
	if from == ModePlaying && e.session.Mode == ModeShowingResults {
		e.record(ActionFinish, e.session, "")
	}
	e.emit()
	return true
}

// Review replays the finished quiz with correctness shown.
func (e *Engine) Review() bool {
	if e.loading || !e.session.EnterReview() {
		return false
	}
	e.record(ActionReview, e.session, "")
	e.emit()
	return true
}

// Restart discards the session and any outstanding request and returns to
// Setup. It is valid in every state.
func (e *Engine) Restart() {
	e.abandonIfPlaying()
	e.generation++
	e.loading = false
	e.message = ""
	e.category = ""
	e.count = 0
	e.session = New()
	e.emit()
}

// Result returns the final score once results are shown.
func (e *Engine) Result() (quiz.Result, bool) {
	return e.session.Result()
}

func (e *Engine) abandonIfPlaying() {
	if !e.loading && e.session.Mode == ModePlaying {
		e.record(ActionAbandon, e.session, "")
	}
}

func (e *Engine) record(action string, s *Session, message string) {
	if e.config.Recorder == nil {
		return
	}
	err := e.config.Recorder.AppendQuizEvent(context.Background(), store.QuizEventData{
		SessionID: s.ID,
		Action:    action,
		Category:  s.Category,
		Count:     s.Count,
		Score:     s.Score,
		Total:     len(s.Questions),
		Message:   message,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record quiz event: %v\n", err)
	}
}

// OnChange registers fn to be called on the owning goroutine after every
// transition.
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.listeners = append(e.listeners, fn)
}

// Subscribe returns a channel of snapshots, primed with the current one.
// A slow reader misses intermediate snapshots but always sees the latest.
// Subscribe must be called by the owner; cancel may be called from anywhere.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	initial := e.snapshot()

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	ch <- initial
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) emit() {
	snap := e.snapshot()
	for _, fn := range e.listeners {
		fn(snap)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
