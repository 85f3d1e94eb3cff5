// Package schedule wraps gocron for the bot's recurring jobs (daily throttle
// reset, periodic feed poll).
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wickhamj/banterbot/internal/logger"
)

// Scheduler runs recurring jobs from cron expressions.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates and starts a scheduler in UTC.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(&gocronLogAdapter{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s.Start()
	return &Scheduler{scheduler: s}, nil
}

// AddJob schedules job under name according to cronExpr (e.g. "0 0 * * *" for
// daily at midnight).
func (s *Scheduler) AddJob(name, cronExpr string, job func()) error {
	if name == "" {
		return errors.New("empty job name")
	}
	if cronExpr == "" {
		return errors.New("empty cron expression")
	}
	if job == nil {
		return errors.New("nil job function")
	}

	scheduled, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(job),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	entry := logger.WithField("job", name).WithField("cron", cronExpr)
	if nextRun, err := scheduled.NextRun(); err == nil {
		entry = entry.WithField("next_run", nextRun.Format(time.RFC3339))
	}
	entry.Info("job-scheduled")

	return nil
}

// Stop shuts the scheduler down and waits for running jobs to finish.
func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	return nil
}

// gocronLogAdapter routes gocron's internal logging to our logger.
type gocronLogAdapter struct{}

func (l *gocronLogAdapter) Debug(msg string, args ...interface{}) {
	logger.GetLogger().Debug(append([]interface{}{msg}, args...)...)
}

func (l *gocronLogAdapter) Info(msg string, args ...interface{}) {
	logger.GetLogger().Info(append([]interface{}{msg}, args...)...)
}

func (l *gocronLogAdapter) Warn(msg string, args ...interface{}) {
	logger.GetLogger().Warn(append([]interface{}{msg}, args...)...)
}

func (l *gocronLogAdapter) Error(msg string, args ...interface{}) {
	logger.GetLogger().Error(append([]interface{}{msg}, args...)...)
}
