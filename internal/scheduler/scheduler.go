// Package scheduler runs periodic maintenance jobs on cron specs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"jobboard-backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ReminderSender is the part of the plan usecase the scheduler drives.
type ReminderSender interface {
	SendExpiryReminders(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cronEngine       *cron.Cron
	reminders        ReminderSender
	planReminderSpec string
	jobTimeout       time.Duration
	now              func() time.Time
}

func New(reminders ReminderSender, planReminderSpec string) *Scheduler {
	return &Scheduler{
		cronEngine:       cron.New(cron.WithLocation(time.UTC)),
		reminders:        reminders,
		planReminderSpec: planReminderSpec,
		jobTimeout:       5 * time.Minute,
		now:              time.Now,
	}
}

// Start registers the jobs and starts the cron engine. A bad spec is
// returned before anything runs.
func (s *Scheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.planReminderSpec, s.RunPlanReminders); err != nil {
		return fmt.Errorf("invalid plan reminder schedule %q: %w", s.planReminderSpec, err)
	}

	s.cronEngine.Start()
	logger.Log.Info("Scheduler started", "plan_reminders", s.planReminderSpec)
	return nil
}

// RunPlanReminders sends expiry reminders once. Failures are only logged;
// the next tick retries plans that were not marked.
func (s *Scheduler) RunPlanReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	sent, err := s.reminders.SendExpiryReminders(ctx, s.now().UTC())
	if err != nil {
		logger.Log.Error("Plan reminder run failed", "error", err, "sent", sent)
		return
	}
	logger.Log.Info("Plan reminder run finished", "sent", sent)
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	logger.Log.Info("Scheduler stopped")
}
