package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the cards on a screen.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6 // border + padding
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded border at the given inner width.
func Card(content string, width int, focused bool) string {
	style := theme.Card
	if focused {
		style = theme.CardFocused
	}
	return style.Width(width).Render(content)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
