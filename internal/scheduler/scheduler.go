// Package scheduler wires the daily jobs: scrape, notify and cleanup,
// on Madrid local time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fam-bot/internal/config"
)

// Jobs are the scheduled entry points. Each runs with a fresh timeout
// context; a failing job waits for its next slot.
type Jobs struct {
	Scrape  func(ctx context.Context) error
	Notify  func(ctx context.Context) error
	Cleanup func(ctx context.Context) error
}

const jobTimeout = 15 * time.Minute

// Scheduler runs the daily jobs on their configured times.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// New builds a scheduler in the configured timezone.
func New(cfg *config.Config, jobs Jobs, log *zap.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	s := &Scheduler{cron: c, log: log}

	entries := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{"scrape", cronSpec(cfg.ScrapeHour, cfg.ScrapeMinute), jobs.Scrape},
		{"notify", cronSpec(cfg.NotifyHour, cfg.NotifyMinute), jobs.Notify},
		{"cleanup", cronSpec(cfg.CleanupHour, cfg.CleanupMinute), jobs.Cleanup},
	}
	for _, e := range entries {
		if e.run == nil {
			continue
		}
		name, run := e.name, e.run
		if _, err := c.AddFunc(e.spec, func() { s.runJob(name, run) }); err != nil {
			return nil, fmt.Errorf("scheduling %s: %w", name, err)
		}
		log.Info("job scheduled", zap.String("job", name), zap.String("spec", e.spec))
	}
	return s, nil
}

func (s *Scheduler) runJob(name string, run func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.log.Info("job started", zap.String("job", name))
	if err := run(ctx); err != nil {
		s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.log.Info("job finished", zap.String("job", name))
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func cronSpec(hour, minute int) string {
	return fmt.Sprintf("%d %d * * *", minute, hour)
}

// RetentionCutoff returns midnight the given number of days ago, the
// boundary below which old competitions are removed.
func RetentionCutoff(days int) time.Time {
	return time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)
}
