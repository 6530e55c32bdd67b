package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intmarks/internal/config"
	"github.com/abhisek/intmarks/internal/router"
	"github.com/abhisek/intmarks/internal/screens/form"
	"github.com/abhisek/intmarks/internal/screens/setup"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("expected AppModel, got %T", next)
	}
	return am, cmd
}

func TestStartsOnSetupWithoutCount(t *testing.T) {
	m := newAppModel(Options{Config: config.DefaultConfig()})
	if _, ok := m.router.Active().(*setup.SetupScreen); !ok {
		t.Fatalf("expected setup screen, got %T", m.router.Active())
	}
}

func TestConfiguredCountOpensForm(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Subjects = 3
	m := newAppModel(Options{Config: cfg})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected init command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	m, _ = update(t, m, push)

	f, ok := m.router.Active().(*form.FormScreen)
	if !ok {
		t.Fatalf("expected form screen, got %T", m.router.Active())
	}
	if len(f.Inputs()) != 3 {
		t.Errorf("expected 3 subjects, got %d", len(f.Inputs()))
	}

	m, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	m, _ = update(t, m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("expected depth 1 after esc, got %d", m.router.Depth())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Config: config.DefaultConfig()})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestViewFrame(t *testing.T) {
	m := newAppModel(Options{Config: config.DefaultConfig()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}
	frame := m.render()
	if !strings.Contains(frame, "intmarks") || !strings.Contains(frame, "New Batch") {
		t.Error("expected header with app name and screen title")
	}
	if !strings.Contains(frame, "Pass ≥ 24/40") {
		t.Error("expected default header status")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small!") {
		t.Error("expected min size message")
	}
}
