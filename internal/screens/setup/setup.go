package setup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intmarks/internal/intake"
	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/router"
	"github.com/abhisek/intmarks/internal/screen"
	"github.com/abhisek/intmarks/internal/screens/form"
	"github.com/abhisek/intmarks/internal/ui/components"
	"github.com/abhisek/intmarks/internal/ui/layout"
	"github.com/abhisek/intmarks/internal/ui/theme"
)

var policyOptions = []string{
	"0 means not taken yet",
	"0 is a recorded score",
}

// SetupScreen asks how many subjects to enter and how to read zero scores.
type SetupScreen struct {
	opts        form.Options
	count       components.Field
	policy      components.Choice
	policyFocus bool
	errMsg      string
}

var _ screen.Screen = (*SetupScreen)(nil)

// New creates a setup screen. opts.Count and opts.Policy seed the inputs;
// the other options are handed to the form.
func New(opts form.Options) *SetupScreen {
	count := components.NewField("Subjects", fmt.Sprintf("1-%d", intake.MaxSubjects), true, 2)
	if opts.Count > 0 {
		count.SetValue(strconv.Itoa(opts.Count))
	}
	count.Focus()

	return &SetupScreen{
		opts:   opts,
		count:  count,
		policy: components.NewChoice("Zero scores", policyOptions, int(opts.Policy)),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.count.Focus()
}

func (s *SetupScreen) Title() string {
	return "New Batch"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "←→", Description: "Zero policy"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			s.policyFocus = !s.policyFocus
			if s.policyFocus {
				s.count.Blur()
				return s, nil
			}
			return s, s.count.Focus()
		case "enter":
			return s.submit()
		}
	}

	var cmd tea.Cmd
	if s.policyFocus {
		s.policy, cmd = s.policy.Update(msg)
	} else {
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *SetupScreen) submit() (screen.Screen, tea.Cmd) {
	n, err := strconv.Atoi(strings.TrimSpace(s.count.Value()))
	if err != nil {
		s.errMsg = fmt.Sprintf("Enter a whole number from 1 to %d.", intake.MaxSubjects)
		return s, nil
	}
	if err := intake.CheckCount(n); err != nil {
		switch {
		case errors.Is(err, intake.ErrNoSubjects):
			s.errMsg = "At least one subject is required."
		case errors.Is(err, intake.ErrTooManySubjects):
			s.errMsg = fmt.Sprintf("At most %d subjects per batch.", intake.MaxSubjects)
		default:
			s.errMsg = err.Error()
		}
		return s, nil
	}
	s.errMsg = ""

	opts := s.opts
	opts.Count = n
	opts.Policy = marks.ZeroPolicy(s.policy.Selected)
	next := form.New(opts)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 56 {
		cw = 56
	}

	var b strings.Builder
	b.WriteString(renderBanner(cw-6) + "\n\n")
	b.WriteString(theme.Title.Render("Internal marks calculator") + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Pass mark %.0f / %.0f across CAT 1, CAT 2, CAT 3 and the assignment.",
		marks.PassMark, marks.MaxTotal)) + "\n\n")
	b.WriteString(s.count.View() + "\n\n")
	b.WriteString(s.policy.View(s.policyFocus))
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Fail.Render("✗ "+s.errMsg))
	}

	card := components.Card(b.String(), cw, true)
	return components.Center(card, width, height)
}
