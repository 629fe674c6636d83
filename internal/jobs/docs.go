// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six fields with seconds).
//
// # Available Jobs
//
// LockSweeperJob deletes order claims older than the claim TTL. A claim
// outlives its run when the run fails or the process dies; until it is
// removed, redeliveries of that order report IN_PROGRESS. The pipeline also
// takes over expired claims on its own, so the sweeper only keeps the store
// tidy and makes operator listings accurate.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, "0 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
