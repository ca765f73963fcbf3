package session

import (
	"errors"

	"github.com/abhisek/quizcraft/internal/quiz"
)

// ErrNoQuestions is returned by Load when given an empty question set.
var ErrNoQuestions = errors.New("no questions to load")

// Session is the state of one quiz attempt. It performs no I/O; the Engine
// owns a Session and sequences its transitions with async generation.
//
// Invalid transitions are no-ops that return false.
type Session struct {
	// ID identifies the attempt in the event log.
	ID string

	// Category and Count are the request that produced Questions.
	Category string
	Count    int

	// Questions is fixed once loaded.
	Questions []quiz.Question

	// Index is the displayed question; len(Questions) once finished.
	Index int

	// Score counts indices whose recorded answer is correct.
	Score int

	// Recorded maps question index to the selected answer text.
	Recorded map[int]string

	Mode Mode
}

// New returns an empty session in Setup.
func New() *Session {
	return &Session{Mode: ModeSetup, Recorded: make(map[int]string)}
}

// Load replaces the question set and starts play from the first question.
// Everything except ID, Category and Count is reset.
func (s *Session) Load(questions []quiz.Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	s.Questions = questions
	s.Index = 0
	s.Score = 0
	s.Recorded = make(map[int]string)
	s.Mode = ModePlaying
	return nil
}

// Current returns the displayed question.
func (s *Session) Current() (quiz.Question, bool) {
	if s.Mode != ModePlaying && s.Mode != ModeReviewingAnswers {
		return quiz.Question{}, false
	}
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return quiz.Question{}, false
	}
	return s.Questions[s.Index], true
}

// RecordAnswer stores text as the answer to the current question. The
// score moves by the correctness delta, so an index contributes at most
// one point however often the selection changes. Text that is not one of
// the question's options is ignored.
func (s *Session) RecordAnswer(text string) bool {
	if s.Mode != ModePlaying {
		return false
	}
	q, ok := s.Current()
	if !ok || !q.Has(text) {
		return false
	}

	prev, had := s.Recorded[s.Index]
	wasCorrect := had && q.IsCorrect(prev)
	nowCorrect := q.IsCorrect(text)

	s.Recorded[s.Index] = text
	switch {
	case nowCorrect && !wasCorrect:
		s.Score++
	case wasCorrect && !nowCorrect:
		s.Score--
	}
	return true
}

// CanAdvance reports whether Advance would succeed.
func (s *Session) CanAdvance() bool {
	switch s.Mode {
	case ModePlaying:
		_, answered := s.Recorded[s.Index]
		return answered && s.Index < len(s.Questions)
	case ModeReviewingAnswers:
		return s.Index < len(s.Questions)
	}
	return false
}

// Advance moves to the next question. Past the last one the session shows
// results, from play and from review alike.
func (s *Session) Advance() bool {
	if !s.CanAdvance() {
		return false
	}
	s.Index++
	if s.Index == len(s.Questions) {
		s.Mode = ModeShowingResults
	}
	return true
}

// IsLast reports whether the displayed question is the final one.
func (s *Session) IsLast() bool {
	return len(s.Questions) > 0 && s.Index == len(s.Questions)-1
}

// EnterReview replays the finished quiz from the first question.
func (s *Session) EnterReview() bool {
	if s.Mode != ModeShowingResults {
		return false
	}
	s.Mode = ModeReviewingAnswers
	s.Index = 0
	return true
}

// Result returns the final score.
func (s *Session) Result() (quiz.Result, bool) {
	if s.Mode != ModeShowingResults {
		return quiz.Result{}, false
	}
	return quiz.Result{Score: s.Score, Total: len(s.Questions)}, true
}
