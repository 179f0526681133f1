package jobs

import (
	"context"
	"log/slog"

	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/parcel"

	"github.com/robfig/cron/v3"
)

// DefaultGaugeSchedule refreshes the gauge every thirty seconds.
const DefaultGaugeSchedule = "*/30 * * * * *"

// StatusCounter counts live packages per status.
type StatusCounter interface {
	Handle(ctx context.Context, query queries.CountPackagesByStatusQuery) (map[parcel.Status]int, error)
}

// StatusGauge publishes the counts.
type StatusGauge interface {
	SetPackagesByStatus(counts map[parcel.Status]int)
}

// PackageStatusGaugeJob periodically publishes how many live packages sit in
// each status. It only reads.
type PackageStatusGaugeJob struct {
	counter  StatusCounter
	gauge    StatusGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPackageStatusGaugeJob creates the job. An empty schedule falls back to
// DefaultGaugeSchedule; schedules use the six field cron syntax with seconds.
func NewPackageStatusGaugeJob(
	counter StatusCounter,
	gauge StatusGauge,
	schedule string,
	logger *slog.Logger,
) *PackageStatusGaugeJob {
	if schedule == "" {
		schedule = DefaultGaugeSchedule
	}
	return &PackageStatusGaugeJob{
		counter:  counter,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "package_status_gauge_job"),
	}
}

// Start schedules the refresh and runs it once right away.
func (j *PackageStatusGaugeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Refresh(context.Background())
	})
	if err != nil {
		return err
	}

	j.Refresh(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Package status gauge job started", "schedule", j.schedule)
	return nil
}

// Refresh counts packages and updates the gauge. A failed count keeps the
// previous gauge values.
func (j *PackageStatusGaugeJob) Refresh(ctx context.Context) {
	counts, err := j.counter.Handle(ctx, queries.NewCountPackagesByStatusQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Package status gauge job failed", "error", err)
		return
	}
	j.gauge.SetPackagesByStatus(counts)
}

// Stop waits for a running refresh to finish.
func (j *PackageStatusGaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Package status gauge job stopped")
}
