// Package worker contains the asynchronous job machinery: the executor that
// drives one claimed job to a terminal status, the poll scheduler that
// discovers pending jobs, and the retention sweeper that reclaims expired
// completed jobs.
package worker

import (
	"context"
	"time"

	"github.com/voicemed/report-service/internal/events"
	"github.com/voicemed/report-service/internal/export"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	"github.com/voicemed/report-service/pkg/metrics"
	"go.uber.org/zap"
)

// Executor runs one claimed job to completion. Failures are terminal: the job
// is marked failed and never retried, the operator has to resubmit.
type Executor struct {
	store           store.Store
	exporter        *export.Exporter
	bus             *events.Bus
	processingDelay time.Duration
}

func NewExecutor(s store.Store, exporter *export.Exporter, bus *events.Bus, processingDelay time.Duration) *Executor {
	return &Executor{
		store:           s,
		exporter:        exporter,
		bus:             bus,
		processingDelay: processingDelay,
	}
}

// Run expects a job already claimed into the processing status. The claim
// persisted that transition, so the processing event goes out first, then the
// export runs and the terminal transition is persisted before its event.
func (e *Executor) Run(ctx context.Context, job *model.ReportJob) {
	logger := zap.S().Named("executor")
	logger.Infow("processing job", "job_id", job.ID)

	metrics.IncreaseJobsInFlightMetric()
	defer metrics.DecreaseJobsInFlightMetric()

	e.bus.Publish(ctx, events.NewJobEvent(job))

	if e.processingDelay > 0 {
		select {
		case <-time.After(e.processingDelay):
		case <-ctx.Done():
		}
	}

	reportPath, err := e.exporter.Export(ctx, job)
	if err != nil {
		logger.Errorw("failed to export report", "job_id", job.ID, "error", err)
		e.finish(ctx, job, model.JobStatusFailed, nil)
		return
	}

	e.finish(ctx, job, model.JobStatusCompleted, &reportPath)
	logger.Infow("job completed", "job_id", job.ID, "report_path", reportPath)
}

func (e *Executor) finish(ctx context.Context, job *model.ReportJob, status string, reportPath *string) {
	updated, err := e.store.ReportJob().UpdateStatus(ctx, job.ID, status, reportPath)
	if err != nil {
		zap.S().Named("executor").Errorw("failed to persist job status", "job_id", job.ID, "status", status, "error", err)
		return
	}

	metrics.IncreaseJobsProcessedTotalMetric(status)
	e.bus.Publish(ctx, events.NewJobEvent(updated))
}
