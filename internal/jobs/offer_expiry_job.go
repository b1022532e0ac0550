package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"roodi/internal/core/application/usecases/commands"
)

// OfferExpiryJob sweeps pending offers past their expiry into the expired
// status. Runs every second.
type OfferExpiryJob struct {
	handler commands.ExpireOffersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOfferExpiryJob creates a new job for the offer expiry sweep.
func NewOfferExpiryJob(handler commands.ExpireOffersCommandHandler, logger *slog.Logger) *OfferExpiryJob {
	return &OfferExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "offer_expiry_job"),
	}
}

// Start begins the offer expiry job to run every second.
func (j *OfferExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireOffersCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Offer expiry command construction failed", "error", err)
			return
		}

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Offer expiry sweep failed", "error", err)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Expired pending offers", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiry job started (running every second)")
	return nil
}

// Stop stops the offer expiry job.
func (j *OfferExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer expiry job stopped")
}
