package jobs

import (
	"context"
	"log/slog"

	"buffet/internal/catalog"

	"github.com/robfig/cron/v3"
)

// CatalogRefreshJob keeps the menu snapshot warm. Runs every minute so a
// catalog change reaches customers ahead of the cache's own staleness bound.
type CatalogRefreshJob struct {
	cache  *catalog.Cache
	cron   *cron.Cron
	logger *slog.Logger
}

// NewCatalogRefreshJob creates a job that refreshes the catalog cache.
func NewCatalogRefreshJob(cache *catalog.Cache, logger *slog.Logger) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		cache:  cache,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "catalog_refresh_job"),
	}
}

// Start begins the catalog refresh job to run every minute.
func (j *CatalogRefreshJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		if err := j.cache.Refresh(ctx); err != nil {
			// The cache keeps serving its previous snapshot on failure.
			j.logger.ErrorContext(ctx, "Catalog refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Catalog refresh job started (running every minute)")
	return nil
}

// Stop stops the catalog refresh job.
func (j *CatalogRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Catalog refresh job stopped")
}
