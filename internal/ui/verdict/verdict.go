// Package verdict renders marks predictions for the TUI.
package verdict

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/ui/components"
	"github.com/abhisek/intmarks/internal/ui/theme"
)

// Style returns the text style for a status.
func Style(s marks.Status) lipgloss.Style {
	switch s {
	case marks.StatusPass, marks.StatusSecured:
		return theme.Pass
	case marks.StatusFail, marks.StatusImpossible:
		return theme.Fail
	case marks.StatusNeedsTargets:
		return theme.Warn
	default:
		return theme.Hint
	}
}

// Badge renders the short status label, e.g. "[PASS]".
func Badge(s marks.Status) string {
	return Style(s).Render("[" + s.Label() + "]")
}

// Render draws the converted marks, the total bar, the message and any
// targets of a prediction.
func Render(p marks.Prediction, width int) string {
	var b strings.Builder

	for _, c := range marks.AllComponents {
		mark := " "
		if written(p, c) {
			mark = theme.Pass.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			mark,
			theme.Label.Render(c.DisplayName()),
			theme.Body.Render(fmt.Sprintf("%5.2f / %.0f", p.Converted.Of(c), c.ConvMax())))
	}
	b.WriteString("\n")
	b.WriteString(components.NewScoreBar("Total", p.Converted.Total, marks.MaxTotal, marks.PassMark, width).View())
	b.WriteString("\n\n")

	b.WriteString(Badge(p.Status) + "\n")
	b.WriteString(Style(p.Status).Render(p.Message) + "\n")
	if p.Suggestion != "" {
		b.WriteString(theme.Body.Render("➡ "+p.Suggestion) + "\n")
	}
	if p.Stage != marks.StageNoneWritten && p.Stage != marks.StageAllWritten {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Secured %.2f, up to %.2f still available (best case %.2f).",
			p.Feasibility.CurrentSecured, p.Feasibility.RemainingCapacity, p.Feasibility.BestCase)) + "\n")
	}
	for _, a := range p.Targets {
		line := fmt.Sprintf("  %s: %.2f / %.0f raw (%.2f converted)", a.Component.DisplayName(), a.Raw, a.RawMax, a.Converted)
		if a.Clamped {
			line += " (capped)"
		}
		b.WriteString(theme.Subtitle.Render(line) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func written(p marks.Prediction, c marks.Component) bool {
	switch c {
	case marks.CAT1:
		return p.Flags.CAT1
	case marks.CAT2:
		return p.Flags.CAT2
	case marks.CAT3:
		return p.Flags.CAT3
	default:
		return p.Converted.Assignment > 0
	}
}
