package worker

import (
	"context"
	"os"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"github.com/voicemed/report-service/internal/events"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	"github.com/voicemed/report-service/pkg/metrics"
	"go.uber.org/zap"
)

// Sweeper bounds storage growth: completed jobs whose last update is older
// than the retention age are deleted together with their report files. File
// removal is best effort; the record is gone either way.
type Sweeper struct {
	store        store.Store
	bus          *events.Bus
	interval     time.Duration
	retentionAge time.Duration
}

func NewSweeper(s store.Store, bus *events.Bus, interval, retentionAge time.Duration) *Sweeper {
	return &Sweeper{
		store:        s,
		bus:          bus,
		interval:     interval,
		retentionAge: retentionAge,
	}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	logger := zap.S().Named("sweeper")
	logger.Infow("starting retention sweeper", "interval", s.interval, "retention_age", s.retentionAge)

	ticker := jitterbug.New(s.interval, &jitterbug.Norm{Stdev: 250 * time.Millisecond})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("retention sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	logger := zap.S().Named("sweeper")

	expired, err := s.store.ReportJob().List(ctx,
		store.NewReportJobQueryFilter().
			ByStatus(model.JobStatusCompleted).
			ByUpdatedBefore(time.Now().Add(-s.retentionAge)),
		nil)
	if err != nil {
		logger.Errorw("failed to scan for expired jobs", "error", err)
		return
	}

	for i := range expired {
		job := expired[i]

		if err := s.store.ReportJob().Delete(ctx, job.ID); err != nil {
			logger.Errorw("failed to delete job record", "job_id", job.ID, "error", err)
			continue
		}

		s.bus.Publish(ctx, events.JobEvent{
			ID:        job.ID,
			OwnerID:   job.OwnerID,
			Status:    model.JobStatusDeleted,
			UpdatedAt: time.Now(),
		})
		metrics.IncreaseJobsReclaimedTotalMetric()

		if job.ReportPath != nil {
			if err := os.Remove(*job.ReportPath); err != nil {
				logger.Errorw("failed to delete report file", "job_id", job.ID, "report_path", *job.ReportPath, "error", err)
			} else {
				logger.Infow("deleted report file", "job_id", job.ID, "report_path", *job.ReportPath)
			}
		}

		logger.Infow("deleted job record", "job_id", job.ID)
	}
}
