// Package jobs provides scheduled background tasks for the tracker service.
//
// Jobs are cron-driven through github.com/robfig/cron/v3 with the six-field
// (seconds) syntax.
//
// # Available Jobs
//
// NotificationDispatchJob drains the notification outbox: status changes only
// enqueue requests, this job delivers them and records attempts.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, "*/10 * * * * *", 100, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Dispatch failures are logged and never stop the scheduler. Entries that could
// not be delivered stay pending and are picked up by the next run.
package jobs
