package ports

// ProgressReporter receives pipeline progress. Step is called once per unit of work.
type ProgressReporter interface {
	Start(stage string, total int)
	Step(label string)
	Finish()
}

// NopProgress discards progress
type NopProgress struct{}

func (NopProgress) Start(string, int) {}
func (NopProgress) Step(string)       {}
func (NopProgress) Finish()           {}
