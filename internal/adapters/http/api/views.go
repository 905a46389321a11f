package api

import (
	"time"

	"github.com/okian/admitscore/internal/domain/model"
)

type riskView struct {
	Code               int     `json:"code"`
	Label              string  `json:"label"`
	DistanceFromCutoff float64 `json:"distance_from_cutoff"`
}

type evaluationView struct {
	SubmissionID         string            `json:"submission_id,omitempty"`
	UniversityID         string            `json:"university_id"`
	Success              bool              `json:"success"`
	Score                float64           `json:"score"`
	StandardScoreSum     float64           `json:"standard_score_sum"`
	FailureKind          model.FailureKind `json:"failure_kind,omitempty"`
	FailureReason        string            `json:"failure_reason,omitempty"`
	OptimalScore         float64           `json:"optimal_score,omitempty"`
	ScoreDifference      float64           `json:"score_difference,omitempty"`
	CumulativePercentile float64           `json:"cumulative_percentile,omitempty"`
	Risk                 *riskView         `json:"risk,omitempty"`
	ScoredAt             time.Time         `json:"scored_at"`
}

func toView(ev model.Evaluation) evaluationView {
	r := ev.Result
	v := evaluationView{
		SubmissionID:  ev.SubmissionID,
		UniversityID:  r.UniversityID,
		Success:       r.Success,
		FailureKind:   r.FailureKind,
		FailureReason: r.FailureReason,
		ScoredAt:      ev.ScoredAt,
	}
	if r.Success {
		v.Score = round2(r.Score)
		v.StandardScoreSum = round2(r.StandardScoreSum)
		v.OptimalScore = round2(r.OptimalScore)
		v.ScoreDifference = round2(r.ScoreDifference)
		v.CumulativePercentile = round2(r.CumulativePercentile)
	}
	if ev.Risk != nil {
		v.Risk = &riskView{
			Code:               ev.Risk.Code,
			Label:              ev.Risk.Label,
			DistanceFromCutoff: round2(ev.Risk.DistanceFromCutoff),
		}
	}
	return v
}

func toViews(evs []model.Evaluation) []evaluationView {
	out := make([]evaluationView, len(evs))
	for i, ev := range evs {
		out[i] = toView(ev)
	}
	return out
}

type resultsResponse struct {
	CandidateID  string           `json:"candidate_id,omitempty"`
	SubmissionID string           `json:"submission_id,omitempty"`
	Results      []evaluationView `json:"results"`
}
