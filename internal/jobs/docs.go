// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfilment.
//
// # Available Jobs
//
// 1. StatusCheckerJob - Runs every 30 minutes to poll the courier for delivery statuses
// 2. LocationSyncJob - Runs daily at 04:00 to refresh courier reference data
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(checkPendingShipmentsHandler, syncLocationsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The status checker keeps its frequency low because every pass spends one
// courier API call per pending order and the courier enforces rate limits.
// Reference data changes rarely, so a daily sync is enough.
//
// # Error Handling
//
// - Both jobs log failures and wait for the next scheduled run
// - A failed pass never prevents future passes
// - Failed job starts will stop any already running jobs
package jobs
