package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intmarks/internal/ui/theme"
)

// Field wraps bubbles/textinput with a label and an optional numeric filter.
type Field struct {
	Model   textinput.Model
	Label   string
	Numeric bool
	Suffix  string
	err     string
}

// maxFieldWidth caps the visible input; longer values scroll.
const maxFieldWidth = 24

// NewField creates a blurred field. Numeric fields accept digits and a
// single decimal point.
func NewField(label, placeholder string, numeric bool, charLimit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	// Without a width the input shows only the first placeholder rune.
	ti.SetWidth(max(lipgloss.Width(placeholder), min(charLimit, maxFieldWidth), 1))
	return Field{Model: ti, Label: label, Numeric: numeric}
}

// Update forwards messages to the input, dropping keys a numeric field
// cannot hold.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.Numeric {
		if kmsg, ok := msg.(tea.KeyMsg); ok && !f.accepts(kmsg.String()) {
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

func (f Field) accepts(key string) bool {
	if len(key) != 1 {
		return true
	}
	c := key[0]
	if c >= '0' && c <= '9' {
		return true
	}
	return c == '.' && !strings.Contains(f.Model.Value(), ".")
}

// Focus focuses the field.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes focus from the field.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Focused reports whether the field has focus.
func (f Field) Focused() bool {
	return f.Model.Focused()
}

// Value returns the trimmed input value.
func (f Field) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// SetValue replaces the input value.
func (f *Field) SetValue(s string) {
	f.Model.SetValue(s)
}

// SetError attaches an inline error; an empty string clears it.
func (f *Field) SetError(msg string) {
	f.err = msg
}

// Err returns the inline error, if any.
func (f Field) Err() string {
	return f.err
}

// View renders the label, the input and any error.
func (f Field) View() string {
	label := theme.Label.Render(f.Label)
	if f.Focused() {
		label = theme.Label.Foreground(theme.Primary).Bold(true).Render(f.Label)
	}

	view := label + f.Model.View()
	if f.Suffix != "" {
		view += " " + theme.Subtitle.Render(f.Suffix)
	}
	if f.err != "" {
		view += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+f.err)
	}
	return view
}
