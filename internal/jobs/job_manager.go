package jobs

import (
	"fmt"
	"log/slog"

	"buffet/internal/catalog"
	"buffet/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	catalogRefreshJob *CatalogRefreshJob
	cartCleanupJob    *CartCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cache *catalog.Cache,
	cancelStaleCartsHandler commands.CancelStaleCartsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		catalogRefreshJob: NewCatalogRefreshJob(cache, logger),
		cartCleanupJob:    NewCartCleanupJob(cancelStaleCartsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.catalogRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start catalog refresh job: %w", err)
	}

	if err := jm.cartCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.catalogRefreshJob.Stop()
		return fmt.Errorf("failed to start cart cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cartCleanupJob.Stop()
	jm.catalogRefreshJob.Stop()
}
