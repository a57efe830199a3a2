package views

import (
	"strings"
	"testing"
)

func TestProgressModel_TracksStage(t *testing.T) {
	m := NewProgressModel()

	m.Update(StartMsg{Stage: "checksum", Total: 4})
	m.Update(StepMsg{Label: "users"})

	if m.Stage() != "checksum" {
		t.Errorf("expected stage checksum, got %q", m.Stage())
	}
	if got := m.Percent(); got != 0.25 {
		t.Errorf("expected 0.25, got %v", got)
	}
	if !strings.Contains(m.View(), "users") {
		t.Error("expected current label in view")
	}
	if !strings.Contains(m.View(), "1/4") {
		t.Error("expected counter in view")
	}
}

func TestProgressModel_FinishKeepsSummary(t *testing.T) {
	m := NewProgressModel()

	m.Update(StartMsg{Stage: "checksum", Total: 2})
	m.Update(StepMsg{Label: "users"})
	m.Update(StepMsg{Label: "orders"})
	m.Update(FinishMsg{})
	m.Update(StartMsg{Stage: "diff", Total: 1})

	view := m.View()
	if !strings.Contains(view, "2/2") {
		t.Errorf("expected finished stage summary, got %q", view)
	}
	if m.Stage() != "diff" {
		t.Errorf("expected stage diff, got %q", m.Stage())
	}
	if m.Percent() != 0 {
		t.Errorf("expected new stage to start empty, got %v", m.Percent())
	}
}

func TestProgressModel_EmptyStageIsComplete(t *testing.T) {
	m := NewProgressModel()
	m.Update(StartMsg{Stage: "diff", Total: 0})

	if m.Percent() != 1 {
		t.Errorf("expected empty stage to be complete, got %v", m.Percent())
	}
}

func TestProgressModel_QuitMsg(t *testing.T) {
	m := NewProgressModel()
	if _, cmd := m.Update(QuitMsg{}); cmd == nil {
		t.Error("expected quit command")
	}
}
