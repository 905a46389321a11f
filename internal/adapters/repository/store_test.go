package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/admitscore/internal/adapters/repository"
	"github.com/okian/admitscore/internal/domain/model"
)

func evaluation(sub, cand, univ string, score float64, risk *model.RiskAssessment) model.Evaluation {
	return model.Evaluation{
		SubmissionID: sub,
		CandidateID:  cand,
		Result: model.CompositeResult{
			UniversityID:     univ,
			Success:          true,
			Score:            score,
			StandardScoreSum: 400,
		},
		Risk:     risk,
		ScoredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func stores(t *testing.T) map[string]repository.Store {
	t.Helper()
	sqlite, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]repository.Store{
		"memory": repository.NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreSaveAndQuery(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			risk := &model.RiskAssessment{Code: 3, Label: "likely", DistanceFromCutoff: 12.5}
			require.NoError(t, s.Save(ctx, []model.Evaluation{
				evaluation("s1", "c1", "u1", 700, risk),
				evaluation("s1", "c1", "u2", 650, nil),
				evaluation("s2", "c2", "u1", 500, nil),
			}))
			assert.Equal(t, 3, s.Count(ctx))

			got, err := s.BySubmission(ctx, "s1")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "u1", got[0].Result.UniversityID)
			assert.Equal(t, 700.0, got[0].Result.Score)
			require.NotNil(t, got[0].Risk)
			assert.Equal(t, *risk, *got[0].Risk)
			assert.Nil(t, got[1].Risk)
			assert.True(t, got[0].ScoredAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

			byCand, err := s.ByCandidate(ctx, "c2")
			require.NoError(t, err)
			require.Len(t, byCand, 1)
			assert.Equal(t, "s2", byCand[0].SubmissionID)
		})
	}
}

func TestStoreReplacesSameKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, []model.Evaluation{evaluation("s1", "c1", "u1", 700, nil)}))
			require.NoError(t, s.Save(ctx, []model.Evaluation{evaluation("s1", "c1", "u1", 710, nil)}))
			assert.Equal(t, 1, s.Count(ctx))

			got, err := s.BySubmission(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, 710.0, got[0].Result.Score)
		})
	}
}

func TestStoreFailuresRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ev := model.Evaluation{
				SubmissionID: "s9",
				CandidateID:  "c9",
				Result:       model.Failed("u9", model.FailureEligibility, "calculus or geometry required"),
				ScoredAt:     time.Unix(0, 0).UTC(),
			}
			require.NoError(t, s.Save(ctx, []model.Evaluation{ev}))
			got, err := s.ByCandidate(ctx, "c9")
			require.NoError(t, err)
			assert.False(t, got[0].Result.Success)
			assert.Equal(t, model.FailureEligibility, got[0].Result.FailureKind)
			assert.Equal(t, "calculus or geometry required", got[0].Result.FailureReason)
		})
	}
}

func TestStoreNotFoundAndInvalid(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.BySubmission(ctx, "missing")
			assert.ErrorIs(t, err, repository.ErrNotFound)
			_, err = s.ByCandidate(ctx, "missing")
			assert.ErrorIs(t, err, repository.ErrNotFound)

			err = s.Save(ctx, []model.Evaluation{evaluation("", "c1", "u1", 1, nil)})
			assert.ErrorIs(t, err, repository.ErrInvalidEvaluation)
			assert.Equal(t, 0, s.Count(ctx))
		})
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := repository.OpenSQLite(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrNoPath)
}

func TestMemoryStoreHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := repository.NewMemoryStore().Save(ctx, []model.Evaluation{evaluation("s", "c", "u", 1, nil)})
	assert.ErrorIs(t, err, context.Canceled)
}
