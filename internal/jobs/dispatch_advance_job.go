package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"roodi/internal/core/application/usecases/commands"
)

// DispatchAdvanceJob re-issues offers for orders still searching for a rider
// after their previous offer was rejected or expired. Runs every second.
type DispatchAdvanceJob struct {
	handler commands.AdvanceDispatchCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchAdvanceJob creates a new job for the dispatch advance sweep.
func NewDispatchAdvanceJob(handler commands.AdvanceDispatchCommandHandler, logger *slog.Logger) *DispatchAdvanceJob {
	return &DispatchAdvanceJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_advance_job"),
	}
}

// Start begins the dispatch advance job to run every second.
func (j *DispatchAdvanceJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewAdvanceDispatchCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Dispatch advance command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Dispatch advance sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch advance job started (running every second)")
	return nil
}

// Stop stops the dispatch advance job.
func (j *DispatchAdvanceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch advance job stopped")
}
