package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/adapters/tui/styles"
)

// FormKeyMap defines key bindings for forms
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// DefaultFormKeys returns the default form key bindings
var DefaultFormKeys = FormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// Field is one labelled input of a form
type Field struct {
	Label string
	Input textinput.Model
	// Secret fields are masked and their value is never trimmed
	Secret bool
	// Check validates the value on submit; nil accepts anything
	Check func(string) error
}

// TextField creates a plain field prefilled with value
func TextField(label, placeholder, value string, limit int, check func(string) error) Field {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.SetValue(value)
	return Field{Label: label, Input: input, Check: check}
}

// SecretField creates a masked field prefilled with value
func SecretField(label, value string, limit int) Field {
	f := TextField(label, "", value, limit, nil)
	f.Input.EchoMode = textinput.EchoPassword
	f.Input.EchoCharacter = '•'
	f.Secret = true
	return f
}

// Form moves focus between fields and validates them on submit
type Form struct {
	Fields  []Field
	Focused int
	Keys    FormKeyMap
}

// NewForm creates a form with the first field focused
func NewForm(fields ...Field) *Form {
	f := &Form{Fields: fields, Keys: DefaultFormKeys}
	if len(fields) > 0 {
		f.Fields[0].Input.Focus()
	}
	return f
}

// Init returns the blink command for the focused input
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on next/prev keys and forwards anything else to the
// focused input
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Next):
			f.focus(f.Focused + 1)
			return nil
		case key.Matches(msg, f.Keys.Prev):
			f.focus(f.Focused - 1)
			return nil
		}
	}

	if len(f.Fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.Fields[f.Focused].Input, cmd = f.Fields[f.Focused].Input.Update(msg)
	return cmd
}

// focus moves focus to index i, wrapping around both ends
func (f *Form) focus(i int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	f.Fields[f.Focused].Input.Blur()
	f.Focused = ((i % n) + n) % n
	f.Fields[f.Focused].Input.Focus()
}

// Value returns the value of field i
func (f *Form) Value(i int) string {
	v := f.Fields[i].Input.Value()
	if f.Fields[i].Secret {
		return v
	}
	return strings.TrimSpace(v)
}

// Validate runs every field check in order. The first failing field gets
// focus and its error is returned.
func (f *Form) Validate() error {
	for i, field := range f.Fields {
		if field.Check == nil {
			continue
		}
		if err := field.Check(f.Value(i)); err != nil {
			f.focus(i)
			return err
		}
	}
	return nil
}

// View renders every field followed by the key help
func (f *Form) View(submitText string) string {
	var b strings.Builder
	for i, field := range f.Fields {
		b.WriteString(styles.InputLabel.Render(field.Label))
		b.WriteString("\n")
		if i == f.Focused {
			b.WriteString(styles.InputFocused.Render(field.Input.View()))
		} else {
			b.WriteString(styles.InputField.Render(field.Input.View()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	help := []string{
		styles.HelpKey.Render("tab") + " " + styles.HelpDesc.Render("next field"),
		styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render(submitText),
		styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"),
	}
	if len(f.Fields) < 2 {
		help = help[1:]
	}
	return b.String() + strings.Join(help, "  ")
}
