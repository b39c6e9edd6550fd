package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/modshield/modgate/pkg/app/moderation"
	"github.com/modshield/modgate/pkg/config"
	"github.com/modshield/modgate/pkg/domain/task"
	"github.com/modshield/modgate/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Scheduler drains the deferred-analysis queue with bounded parallelism.
// Priority is strict within a batch: urgent work is dispatched before lower
// tiers, but a running analysis is never preempted.
type Scheduler struct {
	tasks        task.Repository
	orchestrator moderation.Orchestrator
	logger       *logrus.Logger

	width        int64
	batchSize    int
	pollInterval time.Duration

	wg sync.WaitGroup
}

func NewScheduler(
	tasks task.Repository,
	orchestrator moderation.Orchestrator,
	logger *logrus.Logger,
	cfg config.SchedulerConfig,
) *Scheduler {
	return &Scheduler{
		tasks:        tasks,
		orchestrator: orchestrator,
		logger:       logger,
		width:        int64(cfg.Width),
		batchSize:    cfg.BatchSize,
		pollInterval: time.Duration(cfg.PollIntervalMs) * time.Millisecond,
	}
}

// Run polls until the context is cancelled, then waits for in-flight analyses
// to drain.
func (s *Scheduler) Run(ctx context.Context) {
	sem := semaphore.NewWeighted(s.width)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return
		case <-ticker.C:
			if err := s.drainBatch(ctx, sem); err != nil {
				s.logger.WithError(err).Warn("scheduler batch failed")
			}
		}
	}
}

func (s *Scheduler) drainBatch(ctx context.Context, sem *semaphore.Weighted) error {
	batch, err := s.tasks.DequeueBatch(ctx, s.batchSize)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	s.reportDepth(ctx)
	s.Dispatch(ctx, sem, batch)
	return nil
}

// Dispatch runs one batch in strict priority order. Each task waits for a
// semaphore slot before its analysis starts, so at most width analyses run at
// once; ordering is re-evaluated per batch, not globally.
func (s *Scheduler) Dispatch(ctx context.Context, sem *semaphore.Weighted, batch []task.AnalysisTask) {
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Priority.Rank() > batch[j].Priority.Rank()
	})

	for i := range batch {
		t := batch[i]
		if err := sem.Acquire(ctx, 1); err != nil {
			s.logger.WithError(err).Warn("scheduler stopped while waiting for a slot")
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer sem.Release(1)

			if _, err := s.orchestrator.SubmitForAnalysis(ctx, &t.Item, nil, t.Hint); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"content_id": t.Item.ID,
					"priority":   t.Priority,
				}).Error("deferred analysis failed")
			}
		}()
	}
}

// Wait blocks until every dispatched analysis has finished.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) reportDepth(ctx context.Context) {
	depths, err := s.tasks.Depth(ctx)
	if err != nil {
		return
	}
	for priority, depth := range depths {
		prometheus.QueueDepth.WithLabelValues(priority).Set(float64(depth))
	}
}
