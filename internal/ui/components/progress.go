package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// ProgressBar shows how far through the quiz the player is.
type ProgressBar struct {
	Current int
	Total   int
	Width   int
}

// View renders "Q n/total" followed by the bar.
func (p ProgressBar) View() string {
	label := fmt.Sprintf("Q%d/%d", p.Current, p.Total)
	result := lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "

	barWidth := max(p.Width-lipgloss.Width(result), 4)

	var filled int
	if p.Total > 0 {
		filled = barWidth * p.Current / p.Total
	}
	filled = min(max(filled, 0), barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
	return result
}
