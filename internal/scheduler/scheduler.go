// Package scheduler drives periodic source refreshes through a worker pool.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"feedreader/internal/domain"
)

// Processor handles one source refresh.
type Processor interface {
	Process(ctx context.Context, source domain.Source) error
}

// SourceLister reports sources whose next fetch time has passed.
type SourceLister interface {
	ListDueForRefresh(ctx context.Context) ([]domain.Source, error)
}

// Scheduler polls for due sources on an interval and fans the work out to a
// fixed pool of workers.
type Scheduler struct {
	processor   Processor
	sources     SourceLister
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	jobQueue    chan domain.Source
	logger      *slog.Logger
}

func New(processor Processor, sources SourceLister, interval time.Duration, workerCount int, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		processor:   processor,
		sources:     sources,
		interval:    interval,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		jobQueue:    make(chan domain.Source, 100),
		logger:      logger.With("component", "scheduler"),
	}
}

// Start launches the worker pool and the polling loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", "workers", s.workerCount, "interval", s.interval)

	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go s.pollLoop()
}

// Stop cancels the polling loop and waits for in-flight refreshes to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	close(s.jobQueue)
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) pollLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Refresh due sources immediately on startup.
	s.enqueueDueSources()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.enqueueDueSources()
		}
	}
}

func (s *Scheduler) enqueueDueSources() {
	sources, err := s.sources.ListDueForRefresh(s.ctx)
	if err != nil {
		s.logger.Error("failed to list due sources", "error", err)
		return
	}
	if len(sources) == 0 {
		return
	}

	s.logger.Debug("sources due for refresh", "count", len(sources))

	for _, source := range sources {
		select {
		case s.jobQueue <- source:
		case <-s.ctx.Done():
			return
		default:
			s.logger.Warn("job queue full, skipping source", "source", source.Name)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case source, ok := <-s.jobQueue:
			if !ok {
				return
			}
			start := time.Now()
			if err := s.processor.Process(s.ctx, source); err != nil {
				s.logger.Error("source refresh failed", "worker", id, "source", source.Name, "error", err)
				continue
			}
			s.logger.Debug("source refreshed", "worker", id, "source", source.Name, "duration", time.Since(start))
		case <-s.ctx.Done():
			return
		}
	}
}
