package form

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/export"
	"github.com/abhisek/intmarks/internal/intake"
	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/report"
	"github.com/abhisek/intmarks/internal/router"
	"github.com/abhisek/intmarks/internal/screen"
	"github.com/abhisek/intmarks/internal/screens/results"
	"github.com/abhisek/intmarks/internal/ui/components"
	"github.com/abhisek/intmarks/internal/ui/layout"
	"github.com/abhisek/intmarks/internal/ui/theme"
	"github.com/abhisek/intmarks/internal/ui/verdict"
)

// fieldsPerSubject is the name field plus one field per component.
const fieldsPerSubject = 1 + 4

const nameLimit = 40

// Options configures a form.
type Options struct {
	Count    int
	Policy   marks.ZeroPolicy
	Exporter *export.Exporter
	Formats  []export.Format
	Logger   *slog.Logger
}

type subjectCard struct {
	name   components.Field
	scores [4]components.Field // marks.AllComponents order
}

// FormScreen collects the marks of every subject and shows a live
// prediction for the one being edited.
type FormScreen struct {
	opts    Options
	cards   []subjectCard
	current int
	focus   int
	errMsg  string
}

var _ screen.Screen = (*FormScreen)(nil)

// New creates a form for opts.Count subjects, bounded to 1..MaxSubjects.
func New(opts Options) *FormScreen {
	if opts.Count < 1 {
		opts.Count = 1
	}
	if opts.Count > intake.MaxSubjects {
		opts.Count = intake.MaxSubjects
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	cards := make([]subjectCard, opts.Count)
	for i := range cards {
		cards[i].name = components.NewField("Name", marks.DefaultName(i), false, nameLimit)
		for j, c := range marks.AllComponents {
			f := components.NewField(c.DisplayName(), "not taken", true, 6)
			f.Suffix = fmt.Sprintf("/ %.0f", c.RawMax())
			cards[i].scores[j] = f
		}
	}

	s := &FormScreen{opts: opts, cards: cards}
	s.field().Focus()
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.field().Focus()
}

func (s *FormScreen) Title() string {
	return "Enter Marks"
}

// Status shows which subject is being edited.
func (s *FormScreen) Status() string {
	return fmt.Sprintf("Subject %d of %d", s.current+1, len(s.cards))
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "PgUp/PgDn", Description: "Subject"},
		{Key: "Ctrl+S", Description: "Results"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *FormScreen) field() *components.Field {
	return s.fieldAt(s.current, s.focus)
}

func (s *FormScreen) fieldAt(subject, focus int) *components.Field {
	card := &s.cards[subject]
	if focus == 0 {
		return &card.name
	}
	return &card.scores[focus-1]
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down", "enter":
			return s, s.moveTo(s.current*fieldsPerSubject + s.focus + 1)
		case "shift+tab", "up":
			return s, s.moveTo(s.current*fieldsPerSubject + s.focus - 1)
		case "pgdown":
			return s, s.moveTo((s.current+1)*fieldsPerSubject + s.focus)
		case "pgup":
			return s, s.moveTo((s.current-1)*fieldsPerSubject + s.focus)
		case "ctrl+s":
			return s.submit()
		}
	}

	f := s.field()
	var cmd tea.Cmd
	*f, cmd = f.Update(msg)
	return s, cmd
}

// moveTo focuses the field at a flat index across all subjects, wrapping
// at either end.
func (s *FormScreen) moveTo(idx int) tea.Cmd {
	total := len(s.cards) * fieldsPerSubject
	idx = ((idx % total) + total) % total

	s.normalize(s.current, s.focus)
	s.field().Blur()
	s.current, s.focus = idx/fieldsPerSubject, idx%fieldsPerSubject
	s.errMsg = ""
	return s.field().Focus()
}

// normalize rewrites a score field to its clamped value, or flags it when
// it is not a number.
func (s *FormScreen) normalize(subject, focus int) {
	if focus == 0 {
		return
	}
	f := s.fieldAt(subject, focus)
	c := marks.AllComponents[focus-1]
	score, err := intake.ParseScore(c, f.Value())
	if err != nil {
		f.SetError("not a number")
		return
	}
	f.SetError("")
	if score.Set {
		f.SetValue(report.FormatScore(score.Value))
	}
}

// Inputs returns the current inputs of every subject. Fields that do not
// parse count as not taken.
func (s *FormScreen) Inputs() []marks.SubjectInput {
	inputs := make([]marks.SubjectInput, len(s.cards))
	for i := range s.cards {
		inputs[i] = s.input(i)
	}
	return inputs
}

func (s *FormScreen) input(i int) marks.SubjectInput {
	card := s.cards[i]
	in := marks.SubjectInput{Name: card.name.Value()}
	scores := make([]marks.Score, len(marks.AllComponents))
	for j, c := range marks.AllComponents {
		score, err := intake.ParseScore(c, card.scores[j].Value())
		if err == nil {
			scores[j] = score
		}
	}
	in.CAT1, in.CAT2, in.CAT3, in.Assignment = scores[0], scores[1], scores[2], scores[3]
	return in
}

func (s *FormScreen) submit() (screen.Screen, tea.Cmd) {
	s.normalize(s.current, s.focus)
	for i := range s.cards {
		for j := range s.cards[i].scores {
			if s.cards[i].scores[j].Err() != "" {
				s.errMsg = fmt.Sprintf("Fix %s in %s first.", marks.AllComponents[j].DisplayName(), s.name(i))
				return s, nil
			}
		}
	}
	s.errMsg = ""

	r := marks.Evaluate(s.Inputs(), s.opts.Policy)
	s.opts.Logger.Debug("form submitted", "report_id", r.ID, "subjects", len(r.Results),
		"zero_policy", s.opts.Policy.String())

	next := results.New(r, s.opts.Exporter, s.opts.Formats, s.opts.Logger)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *FormScreen) name(i int) string {
	if n := s.cards[i].name.Value(); n != "" {
		return n
	}
	return marks.DefaultName(i)
}

func (s *FormScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactWidth(width)
	if !compact {
		cw = (width - 10) / 2
	}

	tabs := make([]string, len(s.cards))
	for i := range s.cards {
		label := fmt.Sprintf(" %d %s ", i+1, s.name(i))
		if i == s.current {
			tabs[i] = theme.Selected.Reverse(true).Render(label)
		} else {
			tabs[i] = theme.Unselected.Render(label)
		}
	}

	var fields strings.Builder
	fields.WriteString(theme.Title.Render(s.name(s.current)) + "\n\n")
	fields.WriteString(s.cards[s.current].name.View() + "\n\n")
	for j := range s.cards[s.current].scores {
		fields.WriteString(s.cards[s.current].scores[j].View() + "\n")
	}
	fields.WriteString("\n" + theme.Hint.Render("Leave a field empty if the exam is not taken."))
	left := components.Card(fields.String(), cw, true)

	res := marks.EvaluateSubject(s.current, s.input(s.current), s.opts.Policy)
	prediction := theme.Title.Render("Live prediction") + "\n\n" + verdict.Render(res.Prediction, cw-8)
	right := components.Card(prediction, cw, false)

	var body string
	if compact {
		body = left + "\n" + right
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}

	out := strings.Join(tabs, " ") + "\n\n" + body
	if s.errMsg != "" {
		out += "\n" + theme.Fail.Render(s.errMsg)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(out)
}
