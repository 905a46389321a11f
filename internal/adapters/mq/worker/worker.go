// Package worker runs asynchronous scoring jobs taken from the queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/pkg/logger"
	"github.com/okian/admitscore/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Scorer scores a candidate against many universities.
type Scorer interface {
	ScoreAll(ctx context.Context, cand model.Candidate, ids []string) ([]model.CompositeResult, error)
	Assess(res model.CompositeResult) (model.RiskAssessment, bool)
}

// Store persists evaluations.
type Store interface {
	Save(ctx context.Context, evs []model.Evaluation) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Job
}

// InMemoryWorker processes jobs one at a time.
type InMemoryWorker struct {
	queue  Queue
	scorer Scorer
	store  Store
	name   string
	now    func() time.Time

	shutdown chan struct{}
	done     chan struct{}
	once     sync.Once

	logger logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, scorer Scorer, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		scorer:   scorer,
		store:    store,
		name:     "worker",
		now:      time.Now,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes jobs until ctx ends, Shutdown is called or the queue closes.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			metrics.RecordQueueDequeue()
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed", logger.String("submission_id", job.SubmissionID), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker and waits for the current job.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.once.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job model.Job) error { //nolint:gocritic // jobs travel by value
	start := time.Now()
	metrics.AddWorkerActive(1)
	defer func() {
		metrics.AddWorkerActive(-1)
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	results, err := w.scorer.ScoreAll(ctx, job.Candidate, job.UniversityIDs)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "scoring")
		return fmt.Errorf("score submission %s: %w", job.SubmissionID, err)
	}
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordBatchSize(len(job.UniversityIDs))

	scoredAt := w.now()
	evs := make([]model.Evaluation, 0, len(results))
	for _, res := range results {
		ev := model.Evaluation{
			SubmissionID: job.SubmissionID,
			CandidateID:  job.Candidate.ID,
			Result:       res,
			ScoredAt:     scoredAt,
		}
		outcome := "success"
		if !res.Success {
			outcome = string(res.FailureKind)
		}
		metrics.RecordComposite(outcome)
		if a, ok := w.scorer.Assess(res); ok {
			ev.Risk = &a
			metrics.RecordRiskCode(a.Code)
		}
		evs = append(evs, ev)
	}

	writeStart := time.Now()
	if err := w.store.Save(ctx, evs); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store")
		return fmt.Errorf("store submission %s: %w", job.SubmissionID, err)
	}
	metrics.RecordRepositoryWriteLatency(float64(time.Since(writeStart).Milliseconds()))

	w.logger.Debug(ctx, "job done",
		logger.String("submission_id", job.SubmissionID),
		logger.Int("universities", len(results)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates workerCount workers sharing one queue.
func NewPool(workerCount int, q Queue, scorer Scorer, store Store, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		wopts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		p.workers[i] = NewInMemoryWorker(q, scorer, store, wopts...)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start runs every worker in its own goroutine.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut int
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut++
		}
	}
	if timedOut > 0 {
		p.logger.Warn(ctx, "workers did not drain in time", logger.Int("workers", timedOut))
		return fmt.Errorf("%d workers still running: %w", timedOut, shutdownCtx.Err())
	}
	p.logger.Info(ctx, "worker pool stopped")
	return nil
}
