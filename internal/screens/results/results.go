package results

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/export"
	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/report"
	"github.com/abhisek/intmarks/internal/router"
	"github.com/abhisek/intmarks/internal/screen"
	"github.com/abhisek/intmarks/internal/ui/components"
	"github.com/abhisek/intmarks/internal/ui/layout"
	"github.com/abhisek/intmarks/internal/ui/theme"
	"github.com/abhisek/intmarks/internal/ui/verdict"
)

const (
	exportTimeout = 30 * time.Second
	scrollStep    = 5
)

// exportDoneMsg carries the outcome of an export.
type exportDoneMsg struct {
	Paths []string
	Err   error
}

// ResultsScreen shows the final per-subject results and the summary table.
type ResultsScreen struct {
	report   *marks.Report
	exporter *export.Exporter
	formats  []export.Format
	logger   *slog.Logger

	menu      components.Menu
	offset    int
	maxOffset int // from the last View
	exporting bool
	exported  []string
	exportErr error
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates a results screen. A nil exporter disables the export action.
func New(r *marks.Report, exporter *export.Exporter, formats []export.Format, logger *slog.Logger) *ResultsScreen {
	if len(formats) == 0 {
		formats = export.DefaultFormats
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &ResultsScreen{
		report:   r,
		exporter: exporter,
		formats:  formats,
		logger:   logger,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "EXPORT REPORT", Key: "e", Disabled: exporter == nil, Action: func() tea.Cmd {
			return s.startExport(s.formats)
		}},
		{Label: "SAVE INPUTS", Key: "s", Disabled: exporter == nil, Action: func() tea.Cmd {
			return s.startExport([]export.Format{export.FormatJSON})
		}},
		{Label: "EDIT MARKS", Key: "b", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
		{Label: "NEW BATCH", Key: "n", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopToRootMsg{} }
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	s.logger.Info("batch evaluated", "report_id", s.report.ID,
		"subjects", len(s.report.Results), "passed", s.report.Passed, "failed", s.report.Failed)
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

// Status shows the pass count in the header.
func (s *ResultsScreen) Status() string {
	return fmt.Sprintf("%d/%d passed", s.report.Passed, len(s.report.Results))
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Menu"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "e", Description: "Export"},
		{Key: "s", Description: "Save inputs"},
		{Key: "Esc", Description: "Edit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		s.exporting = false
		s.exported = msg.Paths
		s.exportErr = msg.Err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "pgdown":
			s.offset = min(s.offset+scrollStep, s.maxOffset)
			return s, nil
		case "pgup":
			s.offset = max(s.offset-scrollStep, 0)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResultsScreen) startExport(formats []export.Format) tea.Cmd {
	if s.exporter == nil || s.exporting {
		return nil
	}
	s.exporting = true
	s.exported = nil
	s.exportErr = nil

	exporter, r := s.exporter, s.report
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		paths, err := exporter.Export(ctx, r, formats)
		return exportDoneMsg{Paths: paths, Err: err}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body strings.Builder
	for _, res := range s.report.Results {
		block := theme.Title.Render(res.Name) + "\n" + verdict.Render(res.Prediction, cw-8)
		body.WriteString(components.Card(block, cw, false) + "\n")
	}

	var table strings.Builder
	report.RenderSummary(&table, s.report.Records())
	body.WriteString("\n" + theme.Title.Render("Summary of All Subjects") + "\n")
	body.WriteString(table.String())
	body.WriteString(fmt.Sprintf("%s  %s\n",
		theme.Pass.Render(fmt.Sprintf("Passed: %d", s.report.Passed)),
		theme.Fail.Render(fmt.Sprintf("Failed: %d", s.report.Failed))))

	footer := s.menu.View() + s.exportStatus()
	footerHeight := lipgloss.Height(footer)

	lines := strings.Split(body.String(), "\n")
	visible := height - footerHeight - 1
	if visible < 1 {
		visible = 1
	}
	// A resize can shrink the scroll range below the stored offset.
	s.maxOffset = max(len(lines)-visible, 0)
	s.offset = min(s.offset, s.maxOffset)
	end := min(s.offset+visible, len(lines))

	content := strings.Join(lines[s.offset:end], "\n") + "\n\n" + footer
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

func (s *ResultsScreen) exportStatus() string {
	switch {
	case s.exporting:
		return theme.Hint.Render("Exporting...")
	case s.exportErr != nil:
		return theme.Fail.Render("Export failed: " + s.exportErr.Error())
	case len(s.exported) > 0:
		return theme.Pass.Render("Saved: " + strings.Join(s.exported, ", "))
	case s.exporter == nil:
		return theme.Hint.Render("Export disabled.")
	default:
		return ""
	}
}
