package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/ui/components"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.snap.Loading:
		body = s.renderLoading()
	case s.snap.Mode == session.ModeSetup:
		body = s.renderSetup(cw)
	case s.snap.Mode == session.ModeShowingResults:
		body = s.renderResults()
	default:
		body = s.renderQuestion(cw)
	}

	return "\n" + components.Card(body, cw, width)
}

func (s *QuizScreen) renderSetup(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 4).Render("What should the quiz be about?"))
	b.WriteString("\n\n")

	label := theme.Hint.Render("Category  ")
	if s.focus == fieldCategory {
		label = theme.Cursor.Render("Category  ")
	}
	b.WriteString(label + s.category.View())
	b.WriteString("\n\n")
	b.WriteString(s.count.View(s.focus == fieldCount))

	if s.snap.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Message.Width(cw - 4).Render(s.snap.Message))
	}
	return b.String()
}

func (s *QuizScreen) renderLoading() string {
	what := "Generating questions"
	if s.snap.Category != "" {
		what = fmt.Sprintf("Generating %d questions about %s", s.snap.Count, s.snap.Category)
	}
	return s.spinner.View() + " " + theme.Hint.Render(what+"...")
}

func (s *QuizScreen) renderQuestion(cw int) string {
	snap := s.snap

	var b strings.Builder
	progress := components.ProgressBar{Current: snap.Number, Total: snap.Total, Width: cw - 4}
	b.WriteString(progress.View())
	b.WriteString("\n\n")

	if snap.Mode == session.ModeReviewingAnswers {
		b.WriteString(theme.Hint.Render("Reviewing answers"))
		b.WriteString("\n")
	}
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 4)
	b.WriteString(prompt.Render(fmt.Sprintf("Q%d: %s", snap.Number, snap.Prompt)))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())
	b.WriteString("\n")

	next := components.Button{Label: snap.AdvanceLabel(), Enabled: snap.CanAdvance}
	b.WriteString(next.View())
	return b.String()
}

func (s *QuizScreen) renderResults() string {
	result, _ := s.engine.Result()

	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz completed!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Your score: %d / %d", result.Score, result.Total)))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("v to review answers · r to re-attempt · Enter for a new quiz"))
	return b.String()
}
