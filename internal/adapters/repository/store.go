// Package repository persists scored evaluations.
package repository

import (
	"context"
	"sync"

	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/pkg/metrics"
)

// Store provides read/write access to evaluations. An evaluation is keyed by
// submission and university; saving the same key again replaces it.
type Store interface {
	Save(ctx context.Context, evs []model.Evaluation) error
	// BySubmission returns ErrNotFound when nothing was stored for id.
	BySubmission(ctx context.Context, id string) ([]model.Evaluation, error)
	// ByCandidate returns ErrNotFound when nothing was stored for id.
	ByCandidate(ctx context.Context, id string) ([]model.Evaluation, error)
	Count(ctx context.Context) int
	Close() error
}

type key struct {
	submission, university string
}

// MemoryStore keeps evaluations in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  []model.Evaluation
	index map[key]int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{index: make(map[key]int)}
}

// Save stores evaluations.
func (s *MemoryStore) Save(ctx context.Context, evs []model.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, ev := range evs {
		if ev.SubmissionID == "" {
			return ErrInvalidEvaluation
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range evs {
		k := key{ev.SubmissionID, ev.Result.UniversityID}
		if i, ok := s.index[k]; ok {
			s.rows[i] = ev
			continue
		}
		s.index[k] = len(s.rows)
		s.rows = append(s.rows, ev)
	}
	metrics.UpdateRepositoryResults(len(s.rows))
	return nil
}

// BySubmission returns evaluations of one submission in insertion order.
func (s *MemoryStore) BySubmission(_ context.Context, id string) ([]model.Evaluation, error) {
	return s.filter(func(ev model.Evaluation) bool { return ev.SubmissionID == id })
}

// ByCandidate returns evaluations of one candidate in insertion order.
func (s *MemoryStore) ByCandidate(_ context.Context, id string) ([]model.Evaluation, error) {
	return s.filter(func(ev model.Evaluation) bool { return ev.CandidateID == id })
}

func (s *MemoryStore) filter(keep func(model.Evaluation) bool) ([]model.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Evaluation
	for _, ev := range s.rows {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// Count returns the number of stored evaluations.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
