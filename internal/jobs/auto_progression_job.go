package jobs

import (
	"context"
	"log/slog"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AutoProgressionJob runs the periodic sweep that confirms stale orders.
// The schedule is a cron spec with seconds, e.g. "0 * * * * *" for once a
// minute. A SkipIfStillRunning wrapper guarantees sweeps never overlap even
// when one run outlasts the interval.
type AutoProgressionJob struct {
	handler  commands.AutoProgressOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoProgressionJob creates the sweep job with the given cron schedule.
func NewAutoProgressionJob(
	handler commands.AutoProgressOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AutoProgressionJob {
	jobLogger := logger.With("component", "auto_progression_job")

	return &AutoProgressionJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: jobLogger,
	}
}

// Start begins the sweep on its schedule.
func (j *AutoProgressionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewAutoProgressOrdersCommand()

		advanced, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Auto-progression sweep failed", "error", handleErr)
			return
		}

		if advanced > 0 {
			j.logger.InfoContext(ctx, "Auto-progression sweep advanced orders", "count", advanced)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-progression job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *AutoProgressionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-progression job stopped")
}
