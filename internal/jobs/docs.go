// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic reconciliation the event stream cannot guarantee.
//
// # Available Jobs
//
// 1. BoardRefreshJob - Runs every fifteen seconds to reconcile the local
// projection against the order store's active set
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the projection loop
//	jobManager := jobs.NewJobManager(loop, logger)
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
// The refresh job uses the cron expression "*/15 * * * * *". Events keep
// boards fresh between ticks; the poll only repairs drift after missed or
// reordered deliveries, so a bounded interval is enough.
//
// # Error Handling
//
// - Refresh failures are logged and retried on the next tick; the
//   projection keeps serving its last known state in between
// - Failed job starts surface to the caller so startup can abort
package jobs
