package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"github.com/voicemed/report-service/internal/events"
	"github.com/voicemed/report-service/internal/store"
	"github.com/voicemed/report-service/internal/store/model"
	"go.uber.org/zap"
)

// Poller discovers pending jobs on a fixed period and feeds them to a bounded
// worker pool. Discovered jobs are claimed with a conditional update before
// they are enqueued, so two pollers (or a slow previous tick) never execute
// the same job twice.
type Poller struct {
	store      store.Store
	executor   *Executor
	bus        *events.Bus
	interval   time.Duration
	runTimeout time.Duration
	poolSize   int
	queue      chan *model.ReportJob
}

func NewPoller(s store.Store, executor *Executor, bus *events.Bus, interval, runTimeout time.Duration, poolSize, queueDepth int) *Poller {
	return &Poller{
		store:      s,
		executor:   executor,
		bus:        bus,
		interval:   interval,
		runTimeout: runTimeout,
		poolSize:   poolSize,
		queue:      make(chan *model.ReportJob, queueDepth),
	}
}

// Run blocks until ctx is cancelled. Scan errors abort the current tick only;
// the loop picks up again on the next one.
func (p *Poller) Run(ctx context.Context) {
	logger := zap.S().Named("poller")
	logger.Infow("starting job poller", "interval", p.interval, "pool_size", p.poolSize)

	var wg sync.WaitGroup
	for i := 0; i < p.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job := <-p.queue:
					p.executor.Run(ctx, job)
				}
			}
		}()
	}

	ticker := jitterbug.New(p.interval, &jitterbug.Norm{Stdev: 100 * time.Millisecond})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			logger.Info("job poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	logger := zap.S().Named("poller")

	p.failStaleJobs(ctx)

	pending, err := p.store.ReportJob().List(ctx,
		store.NewReportJobQueryFilter().ByStatus(model.JobStatusPending),
		store.NewReportJobQueryOptions().WithSortOrder(store.SortByCreatedTime))
	if err != nil {
		logger.Errorw("failed to scan for pending jobs", "error", err)
		return
	}

	for i := range pending {
		claimed, err := p.store.ReportJob().Claim(ctx, pending[i].ID)
		if err != nil {
			if errors.Is(err, store.ErrJobClaimed) {
				// already taken, skip
				continue
			}
			logger.Errorw("failed to claim job", "job_id", pending[i].ID, "error", err)
			continue
		}

		// blocking on a full queue is the backpressure: further claims wait
		// until a worker frees a slot
		select {
		case p.queue <- claimed:
		case <-ctx.Done():
			return
		}
	}
}

// failStaleJobs marks processing jobs whose last update is older than the run
// timeout as failed. This recovers jobs orphaned by a crash mid-run.
func (p *Poller) failStaleJobs(ctx context.Context) {
	logger := zap.S().Named("poller")

	stale, err := p.store.ReportJob().List(ctx,
		store.NewReportJobQueryFilter().
			ByStatus(model.JobStatusProcessing).
			ByUpdatedBefore(time.Now().Add(-p.runTimeout)),
		nil)
	if err != nil {
		logger.Errorw("failed to scan for stale jobs", "error", err)
		return
	}

	for i := range stale {
		logger.Warnw("marking stale processing job as failed", "job_id", stale[i].ID, "updated_at", stale[i].UpdatedAt)
		updated, err := p.store.ReportJob().UpdateStatus(ctx, stale[i].ID, model.JobStatusFailed, nil)
		if err != nil {
			logger.Errorw("failed to mark stale job", "job_id", stale[i].ID, "error", err)
			continue
		}
		p.bus.Publish(ctx, events.NewJobEvent(updated))
	}
}
