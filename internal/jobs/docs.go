// Package jobs provides scheduled background tasks for the buffet service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the ordering workflow needs.
//
// # Available Jobs
//
// 1. CatalogRefreshJob - Refreshes the menu snapshot every minute so customers
// see availability changes without waiting for the cache to go stale
// 2. CartCleanupJob - Runs hourly to cancel carts their customers abandoned
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(catalogCache, cancelStaleCartsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and wait for the next tick; a failed refresh leaves
// the previous catalog snapshot serving, and a failed sweep leaves the stale
// carts for the next hour's run.
package jobs
