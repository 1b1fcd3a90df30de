package scheduler

import (
	"context"
	"time"

	"rps_game/internal/logger"
	"rps_game/internal/service"

	"github.com/go-co-op/gocron/v2"
)

// Reminders is the job the scheduler runs
type Reminders interface {
	SendReminders(ctx context.Context) (service.ReminderReport, error)
}

type Scheduler struct {
	sched gocron.Scheduler
}

// Start runs the reminder sweep every interval until Stop or ctx is done.
// Overlapping runs are skipped.
func Start(ctx context.Context, interval time.Duration, reminders Reminders) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()
			if _, err := reminders.SendReminders(runCtx); err != nil {
				logger.Error("[Scheduler] reminder sweep failed", "error", err)
			}
		}),
		gocron.WithName("send_reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	logger.Info("[Scheduler] reminder job scheduled", "interval", interval.String())
	return &Scheduler{sched: sched}, nil
}

func (s *Scheduler) Stop() error {
	if s == nil {
		return nil
	}
	return s.sched.Shutdown()
}
