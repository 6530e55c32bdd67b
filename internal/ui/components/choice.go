package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intmarks/internal/ui/theme"
)

// Choice is a single-select option list.
type Choice struct {
	Question string
	Options  []string
	Selected int
}

// NewChoice creates a choice with the given option preselected.
func NewChoice(question string, options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{Question: question, Options: options, Selected: selected}
}

// Update moves the selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "left", "up", "h":
		if c.Selected > 0 {
			c.Selected--
		}
	case "right", "down", "l":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "space":
		c.Selected = (c.Selected + 1) % len(c.Options)
	}
	return c, nil
}

// View renders the question and the options, one per line.
func (c Choice) View(focused bool) string {
	s := theme.Body.Bold(true).Render(c.Question) + "\n"
	for i, opt := range c.Options {
		mark := "( )"
		if i == c.Selected {
			mark = "(•)"
		}
		line := fmt.Sprintf("  %s %s", mark, opt)
		if i == c.Selected && focused {
			s += theme.Selected.Render(line) + "\n"
		} else {
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
