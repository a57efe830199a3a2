package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/adapters/tui/views"
	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

// ErrCancelled is returned when the user leaves a form without submitting
var ErrCancelled = errors.New("cancelled")

// RunConnectionForm asks for the settings of a new connection and registers it.
// It returns the confirmation message of the created connection.
func RunConnectionForm(registry ports.ConnectionRegistry, initial domain.Connection) (string, error) {
	model := views.NewConnectionFormModel(registry, initial)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("connection form failed: %w", err)
	}

	m := final.(*views.ConnectionFormModel)
	if m.Cancelled || !m.Done {
		return "", ErrCancelled
	}
	return m.Result, nil
}

// Confirm asks a yes/no question on the terminal
func Confirm(question, detail string) (bool, error) {
	final, err := tea.NewProgram(views.NewConfirmationModel(question, detail)).Run()
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return final.(*views.ConfirmationModel).Confirmed, nil
}
