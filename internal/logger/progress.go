package logger

import "go.uber.org/zap"

// Progress logs pipeline progress. Used when stderr is not a terminal.
type Progress struct {
	log   *zap.Logger
	stage string
	total int
	done  int
}

// NewProgress creates a progress reporter writing to log
func NewProgress(log *zap.Logger) *Progress {
	return &Progress{log: log}
}

func (p *Progress) Start(stage string, total int) {
	p.stage, p.total, p.done = stage, total, 0
	p.log.Info("stage started", zap.String("stage", stage), zap.Int("total", total))
}

func (p *Progress) Step(label string) {
	p.done++
	p.log.Debug("stage step",
		zap.String("stage", p.stage),
		zap.String("item", label),
		zap.Int("done", p.done),
		zap.Int("total", p.total))
}

func (p *Progress) Finish() {
	p.log.Info("stage finished", zap.String("stage", p.stage), zap.Int("done", p.done))
	p.stage = ""
}
