package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work. It reports how many rows it touched.
type Job interface {
	Execute(ctx context.Context) (int, error)
}

// Scheduler runs background jobs on cron specs with seconds precision, in UTC.
type Scheduler struct {
	cron    *cron.Cron
	log     *slog.Logger
	timeout time.Duration
}

func NewScheduler(log *slog.Logger) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DiscardLogger)),
	)
	return &Scheduler{cron: c, log: log, timeout: 5 * time.Minute}
}

// Register adds job under spec. A run that starts while the previous one is
// still going is skipped.
func (s *Scheduler) Register(name, spec string, job Job) error {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		s.run(name, job)
	}))
	if _, err := s.cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	s.log.Info("job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := job.Execute(ctx)
	if err != nil {
		s.log.Error("job failed", "job", name, "error", err)
		return
	}
	s.log.Info("job finished", "job", name, "affected", n, "took", time.Since(start))
}

func (s *Scheduler) Start() {
	s.log.Info("starting scheduler", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for running jobs to return or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
