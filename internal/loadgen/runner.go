package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/admitscore/pkg/logger"
)

type accepted struct {
	id           string
	universities int
}

// Run submits generated candidates and waits for their evaluations.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	log := logger.Get().Named("loadgen")
	start := time.Now()
	c := newClient(cfg.BaseURL, cfg.Timeout)

	if err := c.health(ctx); err != nil {
		return Stats{}, fmt.Errorf("service health check failed: %w", err)
	}

	cands := NewGenerator(cfg.Seed).Candidates(cfg.Candidates)
	stats := Stats{Generated: len(cands)}
	log.Info(ctx, "submitting candidates",
		logger.String("base_url", cfg.BaseURL),
		logger.Int("candidates", len(cands)),
		logger.Int("workers", cfg.Workers),
	)

	var mu sync.Mutex
	var done []accepted
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, cand := range cands {
		g.Go(func() error {
			rc, status, err := c.submit(gctx, submitRequest{
				SubmissionID:  uuid.NewString(),
				Candidate:     cand,
				UniversityIDs: cfg.UniversityIDs,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil, status >= http.StatusBadRequest:
				stats.Failed++
				log.Debug(gctx, "submission failed", logger.String("candidate_id", cand.ID), logger.Int("status", status))
			case rc.Duplicate:
				stats.Duplicate++
			default:
				stats.Accepted++
				done = append(done, accepted{id: rc.SubmissionID, universities: rc.Universities})
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("submit: %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, a := range done {
		g.Go(func() error {
			ok := waitScored(gctx, c, a, cfg)
			mu.Lock()
			if ok {
				stats.Verified++
			} else {
				stats.Incomplete++
			}
			mu.Unlock()
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("verify: %w", err)
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "load run finished",
		logger.Int("generated", stats.Generated),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Int("incomplete", stats.Incomplete),
		logger.Duration("duration", stats.Duration),
		logger.Float64("submissions_per_second", stats.Throughput()),
	)
	return stats, nil
}

// waitScored polls until the submission has one evaluation per university.
func waitScored(ctx context.Context, c *client, a accepted, cfg Config) bool {
	deadline := time.Now().Add(cfg.PollTimeout)
	for {
		n, err := c.results(ctx, a.id)
		if err == nil && n >= a.universities {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(cfg.PollInterval):
		}
	}
}
