package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// Stepper picks an integer in [Min, Max] with the left and right keys.
type Stepper struct {
	Label    string
	Value    int
	Min, Max int
}

// NewStepper returns a stepper clamped to its range.
func NewStepper(label string, value, lo, hi int) Stepper {
	s := Stepper{Label: label, Min: lo, Max: hi}
	s.Value = min(max(value, lo), hi)
	return s
}

// Update handles left/right and +/- keys.
func (s Stepper) Update(msg tea.Msg) Stepper {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}
	switch kmsg.String() {
	case "left", "-":
		if s.Value > s.Min {
			s.Value--
		}
	case "right", "+":
		if s.Value < s.Max {
			s.Value++
		}
	}
	return s
}

// View renders the stepper. focused highlights the value.
func (s Stepper) View(focused bool) string {
	value := fmt.Sprintf("◂ %d ▸", s.Value)
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if focused {
		style = theme.Cursor
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label+"  ") + style.Render(value)
}
