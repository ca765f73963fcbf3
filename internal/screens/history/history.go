package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/router"
	"github.com/abhisek/quizcraft/internal/screen"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/store"
	"github.com/abhisek/quizcraft/internal/ui/layout"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// Limit is the number of events the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Events []store.QuizEvent
	Err    error
}

// HistoryScreen lists recent quiz events, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.QuizEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.QueryQuizEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return centered.Foreground(theme.TextDim).Italic(true).Render("\n\n  No quizzes yet. Start one from the menu!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection visible when the list is taller than the screen.
	first := max(0, s.selected-(height-3))
	for i := first; i < len(s.events); i++ {
		e := s.events[i]

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + Describe(e)

		style := lipgloss.NewStyle().Foreground(actionColor(e.Action))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    session %s · %d questions requested", e.SessionID, e.Count)
			if e.Message != "" {
				detail += "\n    " + e.Message
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Describe renders a quiz event as one line of history.
func Describe(e store.QuizEvent) string {
	when := e.Timestamp.Local().Format("Jan 02 15:04")
	switch e.Action {
	case session.ActionFinish:
		return fmt.Sprintf("%s  %-24s  scored %d / %d", when, e.Category, e.Score, e.Total)
	case session.ActionStart:
		return fmt.Sprintf("%s  %-24s  started, %d questions", when, e.Category, e.Total)
	case session.ActionAbandon:
		return fmt.Sprintf("%s  %-24s  abandoned at %d / %d", when, e.Category, e.Score, e.Total)
	case session.ActionReview:
		return fmt.Sprintf("%s  %-24s  reviewed answers", when, e.Category)
	case session.ActionFailed:
		return fmt.Sprintf("%s  %-24s  generation failed", when, e.Category)
	}
	return fmt.Sprintf("%s  %-24s  %s", when, e.Category, e.Action)
}

func actionColor(action string) color.Color {
	switch action {
	case session.ActionFinish:
		return theme.Success
	case session.ActionFailed:
		return theme.Error
	case session.ActionAbandon:
		return theme.Accent
	default:
		return theme.Text
	}
}
