package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// statusCheckerSchedule runs the polling pass every 30 minutes.
const statusCheckerSchedule = "0 */30 * * * *"

// StatusCheckerJob manages the scheduled polling of courier delivery statuses.
// Walks every order that is awaiting delivery and asks the courier for the
// current parcel status.
type StatusCheckerJob struct {
	handler commands.CheckPendingShipmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStatusCheckerJob creates a new job for polling delivery statuses.
// Uses CheckPendingShipmentsCommandHandler to process the polling pass.
func NewStatusCheckerJob(handler commands.CheckPendingShipmentsCommandHandler, logger *slog.Logger) *StatusCheckerJob {
	return &StatusCheckerJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "status_checker_job"),
	}
}

// Start begins the status checker job on its 30-minute schedule.
func (j *StatusCheckerJob) Start() error {
	_, err := j.cron.AddFunc(statusCheckerSchedule, func() {
		ctx := context.Background()

		result, err := j.handler.Handle(ctx, commands.NewCheckPendingShipmentsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Status checker job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Status checker pass finished",
			"checked", result.Checked,
			"updated", result.Updated,
			"delivered", result.Delivered,
			"errors", len(result.Errors),
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status checker job started (running every 30 minutes)")
	return nil
}

// Stop stops the status checker job.
func (j *StatusCheckerJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Status checker job stopped")
}
