package pipeline

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler triggers a job on a cron schedule. Statistics agencies publish
// monthly, so the default schedule fires once a month; the job itself is
// idempotent, extra firings only re-insert nothing.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewScheduler registers job under spec (standard 5-field cron syntax).
func NewScheduler(spec string, job func(), log *zap.Logger) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}
