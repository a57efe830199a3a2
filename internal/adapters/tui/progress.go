package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"docdrift/internal/adapters/tui/views"
)

// Progress reports pipeline progress through a bubbletea program.
// It implements ports.ProgressReporter.
type Progress struct {
	program *tea.Program
	done    chan error
}

// NewProgress starts a progress display writing to out
func NewProgress(out io.Writer) *Progress {
	p := &Progress{
		program: tea.NewProgram(views.NewProgressModel(),
			tea.WithOutput(out),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		done: make(chan error, 1),
	}
	go func() {
		_, err := p.program.Run()
		p.done <- err
	}()
	return p
}

func (p *Progress) Start(stage string, total int) {
	p.program.Send(views.StartMsg{Stage: stage, Total: total})
}

func (p *Progress) Step(label string) {
	p.program.Send(views.StepMsg{Label: label})
}

func (p *Progress) Finish() {
	p.program.Send(views.FinishMsg{})
}

// Close stops the display and waits for the final frame to be drawn
func (p *Progress) Close() error {
	p.program.Send(views.QuitMsg{})
	return <-p.done
}
