package jobs

import (
	"context"
	"time"

	"log/slog"

	"pos/internal/core/application/projection"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 10 * time.Second

// BoardRefreshJob periodically reconciles the local projection against the
// order store. Events keep the projection fresh in real time; this poll
// repairs whatever a dropped or lost event left behind.
type BoardRefreshJob struct {
	loop   *projection.Loop
	cron   *cron.Cron
	logger *slog.Logger
}

// NewBoardRefreshJob creates a reconciliation job for the given projection
// loop. The refresh runs every fifteen seconds.
func NewBoardRefreshJob(loop *projection.Loop, logger *slog.Logger) *BoardRefreshJob {
	return &BoardRefreshJob{
		loop:   loop,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "board_refresh_job"),
	}
}

// Start begins the periodic refresh.
func (j *BoardRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		j.loop.Do(func(p *projection.Projection) {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			if refreshErr := p.Refresh(ctx); refreshErr != nil {
				// The projection keeps serving its last known state; the
				// next tick retries.
				j.logger.ErrorContext(ctx, "Board refresh job failed", "error", refreshErr)
			}
		})
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Board refresh job started (running every 15 seconds)")
	return nil
}

// Stop stops the refresh job.
func (j *BoardRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Board refresh job stopped")
}
