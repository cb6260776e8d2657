package jobs

import (
	"context"
	"log/slog"

	"buffet/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CartCleanupJob cancels carts their customers abandoned. Runs hourly; the
// idle window itself lives in the command handler.
type CartCleanupJob struct {
	handler commands.CancelStaleCartsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCartCleanupJob creates a job that sweeps abandoned carts.
func NewCartCleanupJob(handler commands.CancelStaleCartsCommandHandler, logger *slog.Logger) *CartCleanupJob {
	return &CartCleanupJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "cart_cleanup_job"),
	}
}

// Start begins the cart cleanup job to run at the top of every hour.
func (j *CartCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		cancelled, err := j.handler.Handle(ctx, commands.NewCancelStaleCartsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Cart cleanup job failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled abandoned carts", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart cleanup job started (running hourly)")
	return nil
}

// Stop stops the cart cleanup job.
func (j *CartCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cart cleanup job stopped")
}
