package scheduler

import (
	"context"

	"github.com/elcap/swingdash/internal/job"
	"github.com/elcap/swingdash/pkg/logger"
)

// refreshSchedules are the four daily dashboard refresh times, evaluated
// in the scheduler's configured timezone: pre-market, the open, midday,
// and shortly before the close.
var refreshSchedules = []string{
	"0 0 7 * * *",
	"0 30 9 * * *",
	"0 0 12 * * *",
	"0 45 14 * * *",
}

// Triggerer starts one refresh run. Satisfied by *job.Runner.
type Triggerer interface {
	Trigger(ctx context.Context) (job.Outcome, error)
}

// RefreshJob triggers a dashboard refresh run on schedule.
type RefreshJob struct {
	runner Triggerer
	logger *logger.Logger
}

func NewRefreshJob(runner Triggerer, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		runner: runner,
		logger: log.WithField("job", "dashboard_refresh"),
	}
}

func (j *RefreshJob) Name() string { return "dashboard_refresh" }

func (j *RefreshJob) Schedules() []string { return refreshSchedules }

// Run triggers one refresh. A Busy outcome means another trigger is
// already refreshing; the scheduled tick has nothing left to do.
func (j *RefreshJob) Run(ctx context.Context) error {
	outcome, err := j.runner.Trigger(ctx)
	switch outcome {
	case job.OutcomeBusy:
		j.logger.Warn("Scheduled refresh skipped, run already in progress")
		return nil
	case job.OutcomeFailed:
		return err
	default:
		return nil
	}
}
