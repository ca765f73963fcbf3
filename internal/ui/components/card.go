package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// ContentWidth returns the inner width used for quiz cards.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded card of content width cw, centered in
// the frame width.
func Card(content string, cw, frameWidth int) string {
	card := theme.Card.Width(cw).Render(content)
	return lipgloss.PlaceHorizontal(frameWidth, lipgloss.Center, card)
}
