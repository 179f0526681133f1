package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statusGaugeJob *PackageStatusGaugeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	counter StatusCounter,
	gauge StatusGauge,
	gaugeSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusGaugeJob: NewPackageStatusGaugeJob(counter, gauge, gaugeSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.statusGaugeJob.Start(); err != nil {
		return fmt.Errorf("failed to start package status gauge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statusGaugeJob.Stop()
}
