package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "ctrl+c"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks a yes/no question before a destructive action
type ConfirmationModel struct {
	ViewState
	Question string
	Detail   string
	Keys     ConfirmKeyMap

	Confirmed bool
	Done      bool
}

// NewConfirmationModel creates a confirmation with default keys
func NewConfirmationModel(question, detail string) *ConfirmationModel {
	return &ConfirmationModel{
		Question: question,
		Detail:   detail,
		Keys:     DefaultConfirmKeys,
	}
}

func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles key messages for the confirmation
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			m.Done = true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Confirm):
			m.Done = true
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the question and its prompt
func (m *ConfirmationModel) View() string {
	if m.Done {
		return ""
	}
	var b strings.Builder
	if m.Detail != "" {
		b.WriteString(styles.MutedText.Render(m.Detail))
		b.WriteString("\n")
	}
	b.WriteString(RenderConfirmPrompt(m.Question))
	b.WriteString("\n")
	return b.String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(styles.ErrorMsg.Render(question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
