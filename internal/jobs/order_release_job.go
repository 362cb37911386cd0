package jobs

import (
	"context"
	"log/slog"

	"moveline/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderReleaseJob periodically releases orders that reached the delivered
// status: the automatic counterpart of the manual release endpoint.
type OrderReleaseJob struct {
	handler commands.ReleaseDeliveredOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderReleaseJob creates a job that sweeps delivered orders every thirty
// seconds.
func NewOrderReleaseJob(handler commands.ReleaseDeliveredOrdersCommandHandler, logger *slog.Logger) *OrderReleaseJob {
	return &OrderReleaseJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_release_job"),
	}
}

// Start begins the release sweep on its schedule.
func (j *OrderReleaseJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReleaseDeliveredOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order release job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order release job started (running every 30 seconds)")
	return nil
}

// Stop stops the release sweep.
func (j *OrderReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order release job stopped")
}
