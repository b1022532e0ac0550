// Package jobs provides the scheduled background tasks of the dispatch core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic work the offer protocol depends on.
//
// # Available Jobs
//
// 1. OfferExpiryJob - Runs every second to sweep pending offers past their
// expiry into the expired status
// 2. DispatchAdvanceJob - Runs every second to issue the next offer for
// orders stuck searching for a rider
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireOffersHandler, advanceDispatchHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "* * * * * *" and run every second. The
// read path filters expired offers on its own, so the sweep frequency bounds
// how stale the stored statuses get, not correctness.
package jobs
