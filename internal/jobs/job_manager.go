package jobs

import (
	"fmt"
	"log/slog"

	"pos/internal/core/application/projection"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	boardRefreshJob *BoardRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(loop *projection.Loop, logger *slog.Logger) *JobManager {
	return &JobManager{
		boardRefreshJob: NewBoardRefreshJob(loop, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.boardRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start board refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.boardRefreshJob.Stop()
}
