// Package input provides labelled text inputs for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui/styles"
)

// labelWidth aligns the input boxes.
const labelWidth = 8

// Field wraps a bubbles textinput with a label and focus styling.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	secret    bool
	width     int
}

// Option configures a Field.
type Option func(*Field)

// Secret masks the value until Reveal is toggled.
func Secret() Option {
	return func(f *Field) {
		f.secret = true
		f.textinput.EchoMode = textinput.EchoPassword
		f.textinput.EchoCharacter = '•'
	}
}

// WithCharLimit bounds the number of characters accepted.
func WithCharLimit(limit int) Option {
	return func(f *Field) {
		f.textinput.CharLimit = limit
	}
}

// NewField creates a labelled input.
func NewField(s *styles.Styles, label, placeholder string, opts ...Option) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 50

	f := &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input box.
func (f *Field) View() string {
	label := f.styles.Subtitle.Width(labelWidth).Render(f.label)
	box := f.styles.Input
	if f.textinput.Focused() {
		box = f.styles.FocusedInput
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(f.textinput.View()))
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// ToggleReveal switches a secret field between masked and plain text.
// It reports whether the value is now visible.
func (f *Field) ToggleReveal() bool {
	if !f.secret {
		return true
	}
	if f.textinput.EchoMode == textinput.EchoPassword {
		f.textinput.EchoMode = textinput.EchoNormal
		return true
	}
	f.textinput.EchoMode = textinput.EchoPassword
	return false
}

// Revealed reports whether the value is shown in plain text.
func (f *Field) Revealed() bool {
	return f.textinput.EchoMode == textinput.EchoNormal
}

// SetWidth sets the total width of the field.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for label, border and padding
	inputWidth := width - labelWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
