package jobs

import (
	"fmt"
	"log/slog"

	"moveline/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderReleaseJob *OrderReleaseJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	releaseHandler commands.ReleaseDeliveredOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderReleaseJob: NewOrderReleaseJob(releaseHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderReleaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start order release job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderReleaseJob.Stop()
}
