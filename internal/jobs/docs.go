// Package jobs provides scheduled background tasks for the shop service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations of the order lifecycle.
//
// # Available Jobs
//
// 1. AutoProgressionJob - Periodically confirms new orders whose grace
// period expired without any manual action.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(autoProgressHandler, "0 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression (with seconds) taken
// from configuration. Runs are wrapped with SkipIfStillRunning, so a slow
// sweep delays the next run instead of overlapping it.
//
// # Error Handling
//
// A failed sweep run is logged and the schedule continues; per-order
// failures inside a sweep never abort the rest of the sweep.
package jobs
