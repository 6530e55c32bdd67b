package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/abhisek/intmarks/internal/marks"
)

// SummaryHeader is the column header of the summary table.
var SummaryHeader = []string{"Subject", "CAT1", "CAT2", "CAT3", "Assignment", "Total (out of 40)", "Status"}

var (
	passColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	failColor = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
	headColor = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// FormatScore renders a raw score the way the summary shows it.
func FormatScore(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// SummaryRow renders one record as table cells.
func SummaryRow(r marks.SubjectRecord) []string {
	return []string{
		r.Name,
		FormatScore(r.CAT1),
		FormatScore(r.CAT2),
		FormatScore(r.CAT3),
		FormatScore(r.Assignment),
		fmt.Sprintf("%.2f", r.Total),
		r.Status,
	}
}

// RenderSubject writes the converted marks and prediction of one subject.
func RenderSubject(w io.Writer, res marks.Result) error {
	p := res.Prediction
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headColor("Result for "+res.Name))
	b.WriteString("Converted Marks:\n")
	for _, c := range marks.AllComponents {
		fmt.Fprintf(&b, "- %s: %.2f / %.0f\n", c.DisplayName(), p.Converted.Of(c), c.ConvMax())
	}
	fmt.Fprintf(&b, "Total: %.2f / %.0f\n", p.Converted.Total, marks.MaxTotal)
	fmt.Fprintf(&b, "%s\n", statusColor(p.Status)(p.Message))
	if p.Suggestion != "" {
		fmt.Fprintf(&b, "➡ %s\n", p.Suggestion)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func statusColor(s marks.Status) func(a ...interface{}) string {
	switch s {
	case marks.StatusPass, marks.StatusSecured:
		return passColor
	case marks.StatusFail, marks.StatusImpossible:
		return failColor
	case marks.StatusNeedsTargets:
		return warnColor
	default:
		return fmt.Sprint
	}
}

// RenderSummary writes the summary table of every subject.
func RenderSummary(w io.Writer, records []marks.SubjectRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(SummaryHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range records {
		row := SummaryRow(r)
		if r.Passed() {
			row[len(row)-1] = passColor(r.Status)
		} else {
			row[len(row)-1] = failColor(r.Status)
		}
		table.Append(row)
	}
	table.Render()
}

// RenderReport writes every subject followed by the summary table.
func RenderReport(w io.Writer, r *marks.Report) error {
	for _, res := range r.Results {
		if err := RenderSubject(w, res); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, headColor("Summary of All Subjects"))
	RenderSummary(w, r.Records())
	_, err := fmt.Fprintf(w, "Passed: %d  Failed: %d\n", r.Passed, r.Failed)
	return err
}
