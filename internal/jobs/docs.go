// Package jobs provides scheduled background tasks for the tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Jobs only read; every mutation goes through the lifecycle commands.
//
// # Available Jobs
//
// 1. PackageStatusGaugeJob - counts live packages per status and publishes
// the numbers as the tracker_packages gauge
//
// # Usage
//
//	jobManager := jobs.NewJobManager(countHandler, metrics, jobs.DefaultGaugeSchedule, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron syntax with a leading seconds field,
// e.g. "*/30 * * * * *" for every thirty seconds.
//
// # Error Handling
//
// A failed run is logged and the gauge keeps its previous values until the
// next successful run.
package jobs
