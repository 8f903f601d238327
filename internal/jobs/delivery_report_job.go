package jobs

import (
	"context"
	"log/slog"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/robfig/cron/v3"
)

// DeliveryReportJob periodically logs a fleet-wide delivery report: parcel
// counts per status, active gates, and collected revenue. The job is
// read-only; it exists so operators get a daily summary without querying the
// API.
type DeliveryReportJob struct {
	handler  queries.ParcelStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryReportJob creates the report job. schedule is a standard
// five-field cron expression, typically once a day.
func NewDeliveryReportJob(handler queries.ParcelStatsQueryHandler, schedule string, logger *slog.Logger) *DeliveryReportJob {
	return &DeliveryReportJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "delivery_report_job"),
	}
}

// Start schedules the report job.
func (j *DeliveryReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the report job.
func (j *DeliveryReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery report job stopped")
}

func (j *DeliveryReportJob) run() {
	ctx := context.Background()

	// Stats are admin-only; the job runs under a synthetic system identity.
	system, err := user.NewActor(kernel.NewUUID(), user.RoleAdmin, "system@parceltrack.local")
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery report job failed to build system actor", "error", err)
		return
	}

	query, err := queries.NewParcelStatsQuery(system)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery report job failed to build query", "error", err)
		return
	}

	stats, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery report job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Daily delivery report",
		"total", stats.Total,
		"by_status", stats.ByStatus,
		"urgent", stats.Urgent,
		"flagged", stats.Flagged,
		"held", stats.Held,
		"blocked", stats.Blocked,
		"collected_revenue", stats.CollectedRevenue,
	)
}
