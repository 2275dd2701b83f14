package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// locationSyncSchedule runs the reference-data sync daily at 04:00.
const locationSyncSchedule = "0 0 4 * * *"

// LocationSyncJob manages the scheduled refresh of courier reference data.
// Pulls regions, sub-regions and pickup points from the courier and
// deactivates records that disappeared from the feed.
type LocationSyncJob struct {
	handler commands.SyncLocationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewLocationSyncJob creates a new job for syncing courier reference data.
// Uses SyncLocationsCommandHandler to process the sync.
func NewLocationSyncJob(handler commands.SyncLocationsCommandHandler, logger *slog.Logger) *LocationSyncJob {
	return &LocationSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "location_sync_job"),
	}
}

// Start begins the location sync job on its daily schedule.
func (j *LocationSyncJob) Start() error {
	_, err := j.cron.AddFunc(locationSyncSchedule, func() {
		ctx := context.Background()

		result, err := j.handler.Handle(ctx, commands.NewSyncLocationsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Location sync job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Location sync finished",
			"regions", result.Regions,
			"sub_regions", result.SubRegions,
			"pickup_points", result.PickupPoints,
			"deactivated", result.Deactivated,
			"derived_pickup_points", result.DerivedPickupPoints,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location sync job started (running daily at 04:00)")
	return nil
}

// Stop stops the location sync job.
func (j *LocationSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location sync job stopped")
}
