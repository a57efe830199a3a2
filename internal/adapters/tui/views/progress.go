package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/adapters/tui/styles"
)

// StartMsg opens a progress stage
type StartMsg struct {
	Stage string
	Total int
}

// StepMsg advances the open stage by one
type StepMsg struct {
	Label string
}

// FinishMsg closes the open stage
type FinishMsg struct{}

// QuitMsg stops the progress program
type QuitMsg struct{}

// ProgressModel shows one bar per pipeline stage
type ProgressModel struct {
	ViewState
	bar     progress.Model
	spinner spinner.Model

	stage string
	total int
	done  int
	label string
	// finished holds one rendered line per closed stage
	finished []string
}

// NewProgressModel creates an empty progress view
func NewProgressModel() *ProgressModel {
	from, to := styles.Gradient()
	return &ProgressModel{
		bar: progress.New(progress.WithGradient(from, to), progress.WithWidth(40)),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Spinner),
		),
	}
}

// Init starts the spinner
func (m *ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles progress messages
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StartMsg:
		m.stage = msg.Stage
		m.total = msg.Total
		m.done = 0
		m.label = ""
		return m, nil

	case StepMsg:
		m.done++
		m.label = msg.Label
		return m, nil

	case FinishMsg:
		if m.stage != "" {
			m.finished = append(m.finished, fmt.Sprintf("%s %s",
				styles.Stage.Render(m.stage),
				styles.Success.Render(fmt.Sprintf("%d/%d", m.done, m.total))))
		}
		m.stage = ""
		m.label = ""
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Percent returns the completion of the open stage between 0 and 1
func (m *ProgressModel) Percent() float64 {
	if m.total <= 0 {
		return 1
	}
	p := float64(m.done) / float64(m.total)
	if p > 1 {
		return 1
	}
	return p
}

// Stage returns the name of the open stage
func (m *ProgressModel) Stage() string {
	return m.stage
}

// View renders the finished stages and the bar of the open one
func (m *ProgressModel) View() string {
	var b strings.Builder
	for _, line := range m.finished {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.stage == "" {
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %s %s",
		m.spinner.View(),
		styles.Stage.Render(m.stage),
		m.bar.ViewAs(m.Percent()),
		styles.MutedText.Render(fmt.Sprintf("%d/%d", m.done, m.total)))
	if m.label != "" {
		b.WriteString(" ")
		b.WriteString(styles.StepLabel.Render(m.label))
	}
	b.WriteString("\n")
	return b.String()
}
