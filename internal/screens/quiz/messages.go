package quiz

import "github.com/abhisek/quizcraft/internal/session"

// fetchDoneMsg carries a finished generation request back to Update.
type fetchDoneMsg struct {
	Completion session.Completion
}
