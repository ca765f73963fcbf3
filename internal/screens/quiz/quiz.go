// Package quiz is the screen that plays a quiz: setup form, questions,
// results and review, all driven by a session.Engine.
package quiz

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// MaxCount is the largest quiz the setup form offers.
const MaxCount = 20

type setupField int

const (
	fieldCategory setupField = iota
	fieldCount
)

// QuizScreen implements screen.Screen for a single quiz.
type QuizScreen struct {
	engine *session.Engine
	snap   session.Snapshot

	category components.TextInput
	count    components.Stepper
	focus    setupField

	options components.OptionList
	spinner spinner.Model
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen around engine. defaultCount seeds the count
// picker.
func New(engine *session.Engine, defaultCount int) *QuizScreen {
	s := &QuizScreen{
		engine:   engine,
		category: components.NewTextInput("e.g. World History", 60),
		count:    components.NewStepper("Questions", defaultCount, 1, MaxCount),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Cursor)),
	}
	s.sync()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.category.Init()
}

func (s *QuizScreen) Title() string {
	if s.snap.Category != "" {
		return s.snap.Category
	}
	return "New Quiz"
}

// Status shows the running score once questions are loaded.
func (s *QuizScreen) Status() string {
	if s.snap.Total == 0 {
		return ""
	}
	return fmt.Sprintf("Score %d/%d", s.snap.Score, s.snap.Total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.snap.Loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	switch s.snap.Mode {
	case session.ModeSetup:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Switch field"},
			{Key: "←→", Description: "Count"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case session.ModePlaying:
		return []layout.KeyHint{
			{Key: "↑↓/a-d", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "n", Description: s.snap.AdvanceLabel()},
			{Key: "r", Description: "Re-attempt"},
			{Key: "Esc", Description: "Abandon"},
		}
	case session.ModeReviewingAnswers:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.snap.AdvanceLabel()},
			{Key: "Esc", Description: "New quiz"},
		}
	case session.ModeShowingResults:
		return []layout.KeyHint{
			{Key: "v", Description: "Review answers"},
			{Key: "r", Description: "Re-attempt"},
			{Key: "Enter", Description: "New quiz"},
			{Key: "Esc", Description: "New quiz"},
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		s.engine.Complete(msg.Completion)
		return s, s.sync()

	case spinner.TickMsg:
		if !s.snap.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.snap.Mode == session.ModeSetup && s.focus == fieldCategory {
		var cmd tea.Cmd
		s.category, cmd = s.category.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Back handles Esc: leave a quiz in progress for the setup form, or leave
// the screen from setup.
func (s *QuizScreen) Back() tea.Cmd {
	if s.snap.Mode == session.ModeSetup && !s.snap.Loading {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.restart()
	return s.sync()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.snap.Loading {
		return nil
	}

	key := msg.String()
	switch s.snap.Mode {
	case session.ModeSetup:
		return s.handleSetupKey(msg, key)

	case session.ModePlaying:
		switch key {
		case "enter", "space":
			text, ok := s.options.Current()
			if ok && text == s.snap.Selected && s.snap.CanAdvance {
				s.engine.Advance()
			} else if ok {
				s.engine.SelectAnswer(text)
			}
			return s.sync()
		case "n", "right":
			s.engine.Advance()
			return s.sync()
		case "r":
			return s.reattempt()
		}
		s.options = s.options.Update(msg)

	case session.ModeReviewingAnswers:
		switch key {
		case "enter", "n", "right", "space":
			s.engine.Advance()
			return s.sync()
		}

	case session.ModeShowingResults:
		switch key {
		case "v":
			s.engine.Review()
			return s.sync()
		case "r":
			return s.reattempt()
		case "enter":
			s.restart()
			return s.sync()
		}
	}
	return nil
}

func (s *QuizScreen) handleSetupKey(msg tea.KeyMsg, key string) tea.Cmd {
	switch key {
	case "tab", "shift+tab", "up", "down":
		if s.focus == fieldCategory {
			s.focus = fieldCount
			s.category.Blur()
			return nil
		}
		s.focus = fieldCategory
		return s.category.Focus()

	case "enter":
		ticket, ok := s.engine.RequestQuiz(s.category.Value(), s.count.Value)
		if !ok {
			return s.sync()
		}
		return tea.Batch(s.sync(), s.fetch(ticket))
	}

	if s.focus == fieldCount {
		s.count = s.count.Update(msg)
		return nil
	}
	var cmd tea.Cmd
	s.category, cmd = s.category.Update(msg)
	return cmd
}

func (s *QuizScreen) reattempt() tea.Cmd {
	ticket, ok := s.engine.Reattempt()
	if !ok {
		return nil
	}
	return tea.Batch(s.sync(), s.fetch(ticket))
}

// restart returns the engine to setup with an empty category field.
func (s *QuizScreen) restart() {
	s.engine.Restart()
	s.category.Reset()
	s.focus = fieldCategory
}

// fetch runs the generator off the UI goroutine.
func (s *QuizScreen) fetch(t session.Ticket) tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		return fetchDoneMsg{Completion: engine.Fetch(context.Background(), t)}
	}
}

// sync refreshes the cached snapshot and the widgets that mirror it.
func (s *QuizScreen) sync() tea.Cmd {
	prev := s.snap
	s.snap = s.engine.Snapshot()

	reviewing := s.snap.Mode == session.ModeReviewingAnswers
	if s.snap.Number != prev.Number || s.snap.Mode != prev.Mode {
		s.options = components.NewOptionList(s.snap.Options, reviewing)
	} else {
		s.options = s.options.Sync(s.snap.Options, reviewing)
	}

	var cmds []tea.Cmd
	if s.snap.Loading && !prev.Loading {
		cmds = append(cmds, s.spinner.Tick)
	}
	if s.snap.Mode == session.ModeSetup && prev.Mode != session.ModeSetup {
		s.focus = fieldCategory
		cmds = append(cmds, s.category.Focus())
	}
	return tea.Batch(cmds...)
}
