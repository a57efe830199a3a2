package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/application"
	"docdrift/internal/domain"
)

type memoryRegistry struct {
	conns map[string]domain.Connection
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{conns: map[string]domain.Connection{}}
}

func (r *memoryRegistry) Create(conn domain.Connection) error {
	if _, ok := r.conns[conn.Name]; ok {
		return &application.ConnectionExistsError{Name: conn.Name}
	}
	r.conns[conn.Name] = conn
	return nil
}

func (r *memoryRegistry) Get(name string) (domain.Connection, error) {
	c, ok := r.conns[name]
	if !ok {
		return domain.Connection{}, &application.ConnectionNotFoundError{Name: name}
	}
	return c, nil
}

func (r *memoryRegistry) List() ([]domain.Connection, error) { return nil, nil }
func (r *memoryRegistry) Remove(name string) error           { delete(r.conns, name); return nil }
func (r *memoryRegistry) Close() error                       { return nil }

func TestConnectionForm_Defaults(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{})

	got := m.Connection()
	want := domain.Connection{Name: "local", URL: "http://localhost:8529", Database: "_system"}
	if got != want {
		t.Errorf("Connection() = %+v, want %+v", got, want)
	}
	if m.form.Focused != FieldName {
		t.Errorf("expected name field focused, got %d", m.form.Focused)
	}
}

func TestConnectionForm_InitialValuesOverrideDefaults(t *testing.T) {
	initial := domain.Connection{Name: "staging", URL: "mongodb://db:27017", Database: "app", Username: "root"}
	m := NewConnectionFormModel(newMemoryRegistry(), initial)

	if got := m.Connection(); got != initial {
		t.Errorf("Connection() = %+v, want %+v", got, initial)
	}
}

func TestConnectionForm_SubmitCreatesConnection(t *testing.T) {
	registry := newMemoryRegistry()
	m := NewConnectionFormModel(registry, domain.Connection{Password: "s3cret"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a create command")
	}
	msg := cmd()
	created, ok := msg.(ConnectionCreatedMsg)
	if !ok {
		t.Fatalf("expected ConnectionCreatedMsg, got %T", msg)
	}
	if created.Message != "Connection local created" {
		t.Errorf("unexpected message %q", created.Message)
	}
	if registry.conns["local"].Password != "s3cret" {
		t.Error("expected password to be stored")
	}

	_, cmd = m.Update(created)
	if !m.Done || m.Cancelled {
		t.Errorf("expected form done, got done=%v cancelled=%v", m.Done, m.Cancelled)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestConnectionForm_DuplicateNameShowsError(t *testing.T) {
	registry := newMemoryRegistry()
	registry.conns["local"] = domain.Connection{Name: "local"}
	m := NewConnectionFormModel(registry, domain.Connection{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	errMsg, ok := msg.(ConnectionErrMsg)
	if !ok {
		t.Fatalf("expected ConnectionErrMsg, got %T", msg)
	}
	if !errors.Is(errMsg.Err, application.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", errMsg.Err)
	}

	m.Update(errMsg)
	if !m.MessageErr || m.Message == "" {
		t.Error("expected error message to be shown")
	}
	if m.Done {
		t.Error("form should stay open after an error")
	}
}

func TestConnectionForm_InvalidFieldIsRejectedBeforeSubmit(t *testing.T) {
	tests := []struct {
		name      string
		initial   domain.Connection
		wantFocus int
	}{
		{name: "name with spaces", initial: domain.Connection{Name: "my conn"}, wantFocus: FieldName},
		{name: "URL without scheme", initial: domain.Connection{URL: "localhost:8529/db"}, wantFocus: FieldURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newMemoryRegistry()
			m := NewConnectionFormModel(registry, tt.initial)
			m.Update(tea.KeyMsg{Type: tea.KeyTab})

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if cmd != nil {
				t.Error("expected no create command for an invalid form")
			}
			if !m.MessageErr || m.Message == "" {
				t.Error("expected a validation message")
			}
			if m.form.Focused != tt.wantFocus {
				t.Errorf("expected focus on %d, got %d", tt.wantFocus, m.form.Focused)
			}
			if len(registry.conns) != 0 {
				t.Error("nothing should be registered")
			}
		})
	}
}

func TestConnectionForm_TypingClearsError(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{Name: "my conn"})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.MessageErr {
		t.Fatal("expected a validation message")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Message != "" || m.MessageErr {
		t.Errorf("expected message cleared, got %q", m.Message)
	}
}

func TestConnectionForm_ShiftTabWrapsBackwards(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{})

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.form.Focused != FieldPassword {
		t.Errorf("expected focus on password, got %d", m.form.Focused)
	}
}

func TestConnectionForm_PasswordKeepsSurroundingSpaces(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{Name: " staging ", Password: " pw "})

	got := m.Connection()
	if got.Name != "staging" || got.Password != " pw " {
		t.Errorf("Connection() = %+v", got)
	}
}

func TestConnectionForm_EscCancels(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Cancelled || !m.Done {
		t.Error("expected form to be cancelled")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestConnectionForm_TabMovesFocus(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{})

	for want := FieldURL; want <= FieldPassword; want++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
		if m.form.Focused != want {
			t.Fatalf("expected focus on %d, got %d", want, m.form.Focused)
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.form.Focused != FieldName {
		t.Errorf("expected focus to wrap to name, got %d", m.form.Focused)
	}
}

func TestConnectionForm_PasswordIsMasked(t *testing.T) {
	m := NewConnectionFormModel(newMemoryRegistry(), domain.Connection{Password: "hunter2"})

	if strings.Contains(m.View(), "hunter2") {
		t.Error("password must not be rendered in clear text")
	}
}
