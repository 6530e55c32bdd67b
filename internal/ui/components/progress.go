package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/ui/theme"
)

// ScoreBar draws a value against a maximum with a marker at a threshold,
// e.g. a running total against the pass mark.
type ScoreBar struct {
	Label     string
	Value     float64
	Max       float64
	Threshold float64
	Width     int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, value, max, threshold float64, width int) ScoreBar {
	return ScoreBar{
		Label:     label,
		Value:     value,
		Max:       max,
		Threshold: threshold,
		Width:     width,
	}
}

// Percent returns Value/Max clamped to [0, 1].
func (p ScoreBar) Percent() float64 {
	if p.Max <= 0 {
		return 0
	}
	return clamp01(p.Value / p.Max)
}

// View renders the score bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := fmt.Sprintf("  %.2f / %.0f", p.Value, p.Max)
	barWidth := p.Width - lipgloss.Width(result) - len(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	marker := -1
	if p.Max > 0 && p.Threshold > 0 {
		marker = int(float64(barWidth) * clamp01(p.Threshold/p.Max))
		if marker >= barWidth {
			marker = barWidth - 1
		}
	}

	fill := theme.ProgressFilled
	if p.Value >= p.Threshold {
		fill = fill.Background(theme.Success)
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		style := theme.ProgressEmpty
		if i < filled {
			style = fill
		}
		if i == marker {
			bar.WriteString(style.Inherit(theme.ProgressMarker).Render("│"))
			continue
		}
		bar.WriteString(style.Render(" "))
	}

	result += bar.String()
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
