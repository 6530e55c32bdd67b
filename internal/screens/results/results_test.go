package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intmarks/internal/export"
	"github.com/abhisek/intmarks/internal/marks"
	"github.com/abhisek/intmarks/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testReport() *marks.Report {
	return marks.Evaluate([]marks.SubjectInput{
		{Name: "Maths", CAT1: marks.Some(50), CAT2: marks.Some(25), CAT3: marks.Some(50), Assignment: marks.Some(10)},
		{Name: "Physics", CAT1: marks.Some(20), CAT2: marks.Some(10), CAT3: marks.Some(20), Assignment: marks.Some(5)},
	}, marks.ZeroPending)
}

func TestViewShowsSubjectsAndSummary(t *testing.T) {
	s := New(testReport(), nil, nil, nil)
	view := s.View(100, 200)

	for _, want := range []string{"Maths", "Physics", "PASS (Total: 40.00 / 40)", "Summary of All Subjects", "Total (out of 40)", "Passed: 1", "Failed: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if s.Status() != "1/2 passed" {
		t.Errorf("expected status '1/2 passed', got %q", s.Status())
	}
}

func TestExportDisabledWithoutExporter(t *testing.T) {
	s := New(testReport(), nil, nil, nil)
	_, cmd := s.Update(keyPress('e'))
	if cmd != nil {
		t.Error("expected no command when export is disabled")
	}
	if !strings.Contains(s.View(100, 200), "Export disabled.") {
		t.Error("expected disabled export notice")
	}
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(testReport(), export.New(dir, nil), []export.Format{export.FormatCSV}, nil)

	_, cmd := s.Update(keyPress('e'))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	if !s.exporting {
		t.Error("expected exporting state")
	}

	msg := cmd()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %T", msg)
	}
	if done.Err != nil {
		t.Fatalf("unexpected export error: %v", done.Err)
	}

	s.Update(done)
	if s.exporting {
		t.Error("expected exporting to be cleared")
	}
	if len(s.exported) != 1 || filepath.Ext(s.exported[0]) != ".csv" {
		t.Fatalf("expected one csv path, got %v", s.exported)
	}
	if _, err := os.Stat(s.exported[0]); err != nil {
		t.Errorf("expected exported file: %v", err)
	}
	if !strings.Contains(s.View(100, 200), "Saved: ") {
		t.Error("expected saved paths in view")
	}
}

func TestSaveInputsWritesJSON(t *testing.T) {
	s := New(testReport(), export.New(t.TempDir(), nil), nil, nil)

	_, cmd := s.Update(keyPress('s'))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	done := cmd().(exportDoneMsg)
	if done.Err != nil {
		t.Fatalf("unexpected error: %v", done.Err)
	}
	if len(done.Paths) != 1 || filepath.Ext(done.Paths[0]) != ".json" {
		t.Errorf("expected one json path, got %v", done.Paths)
	}
}

func TestExportErrorShown(t *testing.T) {
	s := New(testReport(), nil, nil, nil)
	s.Update(exportDoneMsg{Err: export.ErrUnknownFormat})
	if !strings.Contains(s.View(100, 200), "Export failed: unknown export format") {
		t.Error("expected export error in view")
	}
}

func TestMenuShortcuts(t *testing.T) {
	s := New(testReport(), nil, nil, nil)

	_, cmd := s.Update(keyPress('b'))
	if cmd == nil {
		t.Fatal("expected command for edit")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg for edit")
	}

	_, cmd = s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected command for new batch")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg for new batch")
	}

	_, cmd = s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestScrollClampsToContent(t *testing.T) {
	s := New(testReport(), nil, nil, nil)
	for i := 0; i < 50; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	}
	if view := s.View(100, 20); !strings.Contains(view, "QUIT") {
		t.Error("expected menu to stay visible while scrolled")
	}
	for i := 0; i < 60; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	}
	if s.offset != 0 {
		t.Errorf("expected offset 0, got %d", s.offset)
	}
}

func TestScrollUpAfterOvershoot(t *testing.T) {
	s := New(testReport(), nil, nil, nil)
	s.View(80, 20)
	if s.maxOffset <= scrollStep {
		t.Fatalf("expected content taller than the screen, maxOffset=%d", s.maxOffset)
	}

	for i := 0; i < 20; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	}
	if s.offset != s.maxOffset {
		t.Errorf("expected offset clamped to %d, got %d", s.maxOffset, s.offset)
	}
	bottom := s.View(80, 20)

	s.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if s.offset != s.maxOffset-scrollStep {
		t.Errorf("expected offset %d after one page up, got %d", s.maxOffset-scrollStep, s.offset)
	}
	if s.View(80, 20) == bottom {
		t.Error("expected view to move after one page up")
	}
}

func TestScrollIgnoredWhenContentFits(t *testing.T) {
	s := New(testReport(), nil, nil, nil)
	s.View(100, 200)
	for i := 0; i < 10; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	}
	if s.offset != 0 {
		t.Errorf("expected offset 0 when everything fits, got %d", s.offset)
	}
}
