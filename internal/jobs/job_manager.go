package jobs

import (
	"fmt"
	"log/slog"

	"roodi/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	offerExpiryJob     *OfferExpiryJob
	dispatchAdvanceJob *DispatchAdvanceJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireOffersHandler commands.ExpireOffersCommandHandler,
	advanceDispatchHandler commands.AdvanceDispatchCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		offerExpiryJob:     NewOfferExpiryJob(expireOffersHandler, logger),
		dispatchAdvanceJob: NewDispatchAdvanceJob(advanceDispatchHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.offerExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer expiry job: %w", err)
	}

	if err := jm.dispatchAdvanceJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.offerExpiryJob.Stop()
		return fmt.Errorf("failed to start dispatch advance job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.offerExpiryJob.Stop()
	jm.dispatchAdvanceJob.Stop()
}
