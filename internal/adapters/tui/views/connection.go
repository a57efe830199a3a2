package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/adapters/tui/styles"
	"docdrift/internal/application"
	"docdrift/internal/application/commands"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// Defaults offered by the connection form
const (
	DefaultConnectionName = "local"
	DefaultURL            = "http://localhost:8529"
	DefaultDatabase       = "_system"
)

// Field order of the connection form
const (
	FieldName = iota
	FieldURL
	FieldDatabase
	FieldUsername
	FieldPassword
)

// ConnectionFormModel collects the settings of a new named connection
type ConnectionFormModel struct {
	ViewState
	registry ports.ConnectionRegistry
	form     *Form

	// Done is set once the connection was created or the form cancelled
	Done      bool
	Cancelled bool
	Result    string
}

// NewConnectionFormModel creates a form prefilled with the given connection.
// Empty name, URL and database fall back to the local defaults.
func NewConnectionFormModel(registry ports.ConnectionRegistry, initial domain.Connection) *ConnectionFormModel {
	form := NewForm(
		TextField("Name:", DefaultConnectionName, orDefault(initial.Name, DefaultConnectionName), 64,
			application.ValidateConnectionName),
		TextField("URL:", DefaultURL, orDefault(initial.URL, DefaultURL), 256,
			func(v string) error { return application.ValidateURL("url", v) }),
		TextField("Database:", DefaultDatabase, orDefault(initial.Database, DefaultDatabase), 128,
			func(v string) error { return application.ValidateRequired("database", v) }),
		TextField("Username (optional):", "", initial.Username, 128, nil),
		SecretField("Password (optional):", initial.Password, 256),
	)
	return &ConnectionFormModel{registry: registry, form: form}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Connection returns the connection currently described by the form
func (m *ConnectionFormModel) Connection() domain.Connection {
	return domain.Connection{
		Name:     m.form.Value(FieldName),
		URL:      m.form.Value(FieldURL),
		Database: m.form.Value(FieldDatabase),
		Username: m.form.Value(FieldUsername),
		Password: m.form.Value(FieldPassword),
	}
}

// Init initializes the connection form
func (m *ConnectionFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the connection form
func (m *ConnectionFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ConnectionCreatedMsg:
		m.Done = true
		m.Result = msg.Message
		m.SetMessage(msg.Message, false)
		return m, tea.Quit

	case ConnectionErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			m.Done = true
			m.Cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.form.Keys.Submit):
			if err := m.form.Validate(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			return m, m.create()
		}
		if m.MessageErr {
			m.ClearMessage()
		}
	}

	return m, m.form.Update(msg)
}

func (m *ConnectionFormModel) create() tea.Cmd {
	conn := m.Connection()
	return func() tea.Msg {
		msg, err := commands.NewCreateConnectionCommand(m.registry, conn).Execute(context.Background())
		if err != nil {
			return ConnectionErrMsg{Err: err}
		}
		return ConnectionCreatedMsg{Message: msg}
	}
}

// ConnectionCreatedMsg indicates the connection was registered
type ConnectionCreatedMsg struct {
	Message string
}

// ConnectionErrMsg indicates the connection could not be registered
type ConnectionErrMsg struct {
	Err error
}

// View renders the connection form
func (m *ConnectionFormModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Create Connection"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Credentials are kept in the system keyring."))
	b.WriteString("\n\n")

	b.WriteString(m.form.View("create"))
	if m.Message != "" {
		b.WriteString("\n\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}
	return styles.App.Render(b.String())
}
