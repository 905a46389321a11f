// Package scoring converts candidate exam scores into university composite
// scores and bands them against historical cutoffs.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okian/admitscore/internal/domain/catalog"
	"github.com/okian/admitscore/internal/domain/eligibility"
	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/internal/domain/risk"
)

const defaultParallelism = 8

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism bounds concurrent universities in ScoreAll.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithTables overrides the score tables the converter reads.
func WithTables(t Tables) Option {
	return func(e *Engine) { e.tables = t }
}

// WithCalculator registers or replaces the strategy of a calculator kind.
func WithCalculator(kind model.CalculatorKind, c Calculator) Option {
	return func(e *Engine) { e.overrides[kind] = c }
}

// Engine scores candidates against the universities of one catalog. It is
// safe for concurrent use.
type Engine struct {
	cat         *catalog.Catalog
	tables      Tables
	checker     *eligibility.Checker
	registry    *Registry
	overrides   map[model.CalculatorKind]Calculator
	parallelism int

	// resolved caches the calculator of each university id.
	resolved sync.Map
}

// NewEngine builds an Engine over a catalog.
func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		cat:         cat,
		checker:     eligibility.New(),
		overrides:   make(map[model.CalculatorKind]Calculator),
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	store := cat.Store()
	if e.tables == nil && store != nil {
		e.tables = store
	}
	e.registry = NewRegistry(store, e.overrides)
	return e
}

// Score computes the composite of one candidate for one university. Failures
// are reported in the result, never returned.
func (e *Engine) Score(cand model.Candidate, universityID string) model.CompositeResult {
	res, err := e.score(cand, universityID)
	if err != nil {
		var f *Failure
		if errors.As(err, &f) {
			return model.Failed(universityID, f.Kind, f.Reason)
		}
		return model.Failed(universityID, model.FailureComputation, err.Error())
	}
	return res
}

func (e *Engine) score(cand model.Candidate, id string) (model.CompositeResult, error) {
	cond, ok := e.cat.Condition(id)
	if !ok || e.tables == nil {
		return model.CompositeResult{}, fail(model.FailureUnknownUniversity, fmt.Sprintf("no condition for %q", id), nil)
	}
	if v := e.checker.Check(cand, cond); !v.Valid {
		return model.CompositeResult{}, fail(model.FailureEligibility, v.Message, nil)
	}
	sh, err := NewConverter(e.tables).Sheet(cand, cond)
	if err != nil {
		return model.CompositeResult{}, err
	}
	calc, err := e.resolve(cond)
	if err != nil {
		return model.CompositeResult{}, err
	}
	score, err := calc.Compute(sh, cond)
	if err != nil {
		return model.CompositeResult{}, err
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return model.CompositeResult{}, computationFailure("composite is not a number")
	}
	if cond.MaxScore > 0 && score > cond.MaxScore {
		return model.CompositeResult{}, computationFailure(fmt.Sprintf("composite %.2f exceeds maximum %.2f", score, cond.MaxScore))
	}

	res := model.CompositeResult{
		UniversityID:     id,
		Success:          true,
		Score:            score,
		StandardScoreSum: StandardScoreSum(cand),
	}
	if store := e.cat.Store(); store != nil {
		if optimal, ok := store.Advantage(res.StandardScoreSum, id); ok {
			res.OptimalScore = optimal
			res.ScoreDifference = optimal - score
		}
		if p, err := store.CumulativePercentile(res.StandardScoreSum); err == nil {
			res.CumulativePercentile = p
		}
	}
	return res, nil
}

func (e *Engine) resolve(cond model.UniversityCondition) (Calculator, error) {
	if c, ok := e.resolved.Load(cond.ID); ok {
		return c.(Calculator), nil
	}
	c, err := e.registry.Resolve(cond.Calculator)
	if err != nil {
		return nil, err
	}
	e.resolved.Store(cond.ID, c)
	return c, nil
}

// ScoreAll scores a candidate against many universities concurrently. Results
// follow the order of ids. Only context cancellation is returned as an error.
func (e *Engine) ScoreAll(ctx context.Context, cand model.Candidate, ids []string) ([]model.CompositeResult, error) {
	results := make([]model.CompositeResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Score(cand, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score all: %w", err)
	}
	return results, nil
}

// Assess bands a successful result against the university's cutoffs. ok is
// false for failed results or universities without a cutoff table.
func (e *Engine) Assess(res model.CompositeResult) (model.RiskAssessment, bool) {
	if !res.Success {
		return model.RiskAssessment{}, false
	}
	t, ok := e.cat.Cutoffs(res.UniversityID)
	if !ok {
		return model.RiskAssessment{}, false
	}
	return risk.CutoffBand(res.Score, t), true
}
