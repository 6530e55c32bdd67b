package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/config"
	"github.com/abhisek/intmarks/internal/export"
	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/router"
	"github.com/abhisek/intmarks/internal/screen"
	"github.com/abhisek/intmarks/internal/screens/form"
	"github.com/abhisek/intmarks/internal/screens/setup"
	"github.com/abhisek/intmarks/internal/ui/layout"
)

// Options holds the dependencies of the interactive program.
type Options struct {
	Config   config.Config
	Logger   *slog.Logger
	Exporter *export.Exporter
	Formats  []export.Format
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	formOpts form.Options
	width    int
	height   int
}

// newAppModel creates the root model. The setup screen is the root of the
// stack; a configured subject count opens the form straight away.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	formOpts := form.Options{
		Count:    opts.Config.Subjects,
		Policy:   opts.Config.ZeroPolicy,
		Exporter: opts.Exporter,
		Formats:  opts.Formats,
		Logger:   opts.Logger,
	}
	return AppModel{
		router:   router.New(setup.New(formOpts)),
		formOpts: formOpts,
	}
}

func (m AppModel) Init() tea.Cmd {
	if m.formOpts.Count > 0 {
		next := form.New(m.formOpts)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := fmt.Sprintf("Pass ≥ %.0f/%.0f", marks.PassMark, marks.MaxTotal)
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
