// Package service wires the scoring engine, the submission queue and the
// evaluation store behind the operations exposed by the HTTP API and CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/admitscore/internal/adapters/mq/queue"
	"github.com/okian/admitscore/internal/adapters/mq/worker"
	"github.com/okian/admitscore/internal/adapters/repository"
	"github.com/okian/admitscore/internal/domain/catalog"
	"github.com/okian/admitscore/internal/domain/dedupe"
	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/internal/domain/pattern"
	"github.com/okian/admitscore/internal/domain/scoring"
	"github.com/okian/admitscore/pkg/logger"
	"github.com/okian/admitscore/pkg/metrics"
)

// Submission is an asynchronous scoring request. An empty SubmissionID is
// replaced by a random one; an empty UniversityIDs scores every university.
type Submission struct {
	SubmissionID  string
	Candidate     model.Candidate
	UniversityIDs []string
}

// Receipt acknowledges a submission.
type Receipt struct {
	SubmissionID string `json:"submission_id"`
	Duplicate    bool   `json:"duplicate"`
	Universities int    `json:"universities"`
}

// Service implements the admission scoring operations.
type Service struct {
	mu sync.RWMutex

	cat      *catalog.Catalog
	engine   *scoring.Engine
	patterns pattern.Registry
	store    repository.Store
	deduper  dedupe.Deduper
	queue    *queue.InMemoryQueue
	pool     *worker.Pool

	workerCount     int
	queueSize       int
	dedupeSize      int
	parallelism     int
	maxUniversities int

	started bool
	now     func() time.Time
	logger  logger.Logger
}

// New builds a Service over a loaded catalog. Synchronous scoring works
// immediately; submissions require Start.
func New(cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		cat:             cat,
		workerCount:     runtime.NumCPU(),
		queueSize:       10_000,
		dedupeSize:      100_000,
		parallelism:     runtime.NumCPU() * 2,
		maxUniversities: 500,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.engine = scoring.NewEngine(cat, scoring.WithParallelism(s.parallelism))
	s.patterns = pattern.Build(cat.Conditions())
	metrics.UpdateCatalog(cat.Len(), s.patterns.Len())
	return s
}

// Start creates the queue and starts the worker pool. Workers outlive ctx;
// only Stop ends them.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.engine, s.store, worker.WithClock(s.now))
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "admission scoring service started",
		logger.Int("universities", s.cat.Len()),
		logger.Int("patterns", s.patterns.Len()),
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
	)
	return nil
}

// Stop drains the queue, stops the workers and closes the store.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping admission scoring service")

	var errs []error
	if err := s.pool.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	s.started = false
	return errors.Join(errs...)
}

// Score evaluates a candidate synchronously and bands each success against
// its cutoffs. Nothing is persisted.
func (s *Service) Score(ctx context.Context, cand model.Candidate, ids []string) ([]model.Evaluation, error) {
	ids, err := s.targets(ids)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	results, err := s.engine.ScoreAll(ctx, cand, ids)
	if err != nil {
		return nil, err
	}
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordBatchSize(len(ids))

	scoredAt := s.now()
	out := make([]model.Evaluation, len(results))
	for i, res := range results {
		out[i] = model.Evaluation{CandidateID: cand.ID, Result: res, ScoredAt: scoredAt}
		if res.Success {
			metrics.RecordComposite("success")
		} else {
			metrics.RecordComposite(string(res.FailureKind))
		}
		if a, ok := s.engine.Assess(res); ok {
			out[i].Risk = &a
			metrics.RecordRiskCode(a.Code)
		}
	}
	return out, nil
}

// Submit queues a candidate for asynchronous scoring. A submission id seen
// before is acknowledged as a duplicate and not queued again.
func (s *Service) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return Receipt{}, ErrNotStarted
	}
	if sub.Candidate.ID == "" {
		return Receipt{}, ErrInvalidCandidate
	}
	ids, err := s.targets(sub.UniversityIDs)
	if err != nil {
		return Receipt{}, err
	}
	if sub.SubmissionID == "" {
		sub.SubmissionID = uuid.NewString()
	}
	rc := Receipt{SubmissionID: sub.SubmissionID, Universities: len(ids)}

	if s.deduper.SeenAndRecord(ctx, sub.SubmissionID) {
		metrics.RecordSubmissionDuplicate()
		rc.Duplicate = true
		return rc, nil
	}
	job := model.Job{
		SubmissionID:  sub.SubmissionID,
		Candidate:     sub.Candidate,
		UniversityIDs: ids,
		AcceptedAt:    s.now(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.deduper.Unrecord(ctx, sub.SubmissionID)
		return Receipt{}, fmt.Errorf("enqueue %s: %w", sub.SubmissionID, err)
	}
	metrics.RecordSubmissionAccepted()
	s.logger.Debug(ctx, "submission accepted",
		logger.String("submission_id", sub.SubmissionID),
		logger.String("candidate_id", sub.Candidate.ID),
		logger.Int("universities", len(ids)),
	)
	return rc, nil
}

// Submission returns the stored evaluations of a submission.
func (s *Service) Submission(ctx context.Context, id string) ([]model.Evaluation, error) {
	return s.store.BySubmission(ctx, id)
}

// Results returns every stored evaluation of a candidate.
func (s *Service) Results(ctx context.Context, candidateID string) ([]model.Evaluation, error) {
	return s.store.ByCandidate(ctx, candidateID)
}

// Patterns returns the weight-pattern registry of the catalog.
func (s *Service) Patterns() pattern.Registry {
	return s.patterns
}

// Universities returns every university condition.
func (s *Service) Universities() []model.UniversityCondition {
	return s.cat.Conditions()
}

// University returns one university condition.
func (s *Service) University(id string) (model.UniversityCondition, bool) {
	return s.cat.Condition(id)
}

// targets defaults to the whole catalog; explicit lists are held to the request cap.
func (s *Service) targets(ids []string) ([]string, error) {
	if len(ids) == 0 {
		// the catalog default is not subject to the request cap
		if ids = s.cat.IDs(); len(ids) == 0 {
			return nil, ErrNoUniversities
		}
		return ids, nil
	}
	if len(ids) > s.maxUniversities {
		return nil, fmt.Errorf("%d > %d: %w", len(ids), s.maxUniversities, ErrTooManyUniversities)
	}
	return ids, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":      s.started,
		"universities": s.cat.Len(),
		"patterns":     s.patterns.Len(),
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"dedupeSize":   s.dedupeSize,
		"evaluations":  s.store.Count(ctx),
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["seenSubmissions"] = s.deduper.Size()
		metrics.UpdateQueueSize(queueLen, s.queue.Capacity())
		metrics.UpdateWorkerCount(s.pool.Size())
	}
	return stats
}
