package components

import (
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// Button is a labelled action that may be disabled.
type Button struct {
	Label   string
	Enabled bool
}

// View renders the button.
func (b Button) View() string {
	label := "▸ " + b.Label
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
