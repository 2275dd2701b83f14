package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusCheckerJob *StatusCheckerJob
	locationSyncJob  *LocationSyncJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	checkPendingShipmentsHandler commands.CheckPendingShipmentsCommandHandler,
	syncLocationsHandler commands.SyncLocationsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusCheckerJob: NewStatusCheckerJob(checkPendingShipmentsHandler, logger),
		locationSyncJob:  NewLocationSyncJob(syncLocationsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statusCheckerJob.Start(); err != nil {
		return fmt.Errorf("failed to start status checker job: %w", err)
	}

	if err := jm.locationSyncJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.statusCheckerJob.Stop()
		return fmt.Errorf("failed to start location sync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.locationSyncJob.Stop()
	jm.statusCheckerJob.Stop()
}
