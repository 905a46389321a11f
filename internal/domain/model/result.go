package model

// FailureKind classifies why a composite could not be produced.
type FailureKind string

// Failure kinds.
const (
	FailureNone              FailureKind = ""
	FailureEligibility       FailureKind = "eligibility"
	FailureMissingData       FailureKind = "missing_data"
	FailureComputation       FailureKind = "computation"
	FailureUnknownUniversity FailureKind = "unknown_university"
)

// CompositeResult is the outcome of scoring one candidate against one university.
// Score and StandardScoreSum are only meaningful when Success is true.
type CompositeResult struct {
	UniversityID     string      `json:"university_id"`
	Success          bool        `json:"success"`
	Score            float64     `json:"score"`
	StandardScoreSum float64     `json:"standard_score_sum"`
	FailureKind      FailureKind `json:"failure_kind,omitempty"`
	FailureReason    string      `json:"failure_reason,omitempty"`

	// OptimalScore is the average composite of peers with the same standard score sum.
	OptimalScore float64 `json:"optimal_score,omitempty"`
	// ScoreDifference is OptimalScore minus Score; negative means the pattern favors the candidate.
	ScoreDifference float64 `json:"score_difference,omitempty"`
	// CumulativePercentile is the top-percent position of the standard score sum.
	CumulativePercentile float64 `json:"cumulative_percentile,omitempty"`
}

// Failed builds an unsuccessful result.
func Failed(universityID string, kind FailureKind, reason string) CompositeResult {
	return CompositeResult{UniversityID: universityID, FailureKind: kind, FailureReason: reason}
}

// RiskLevels are the admission bands from safest to riskiest.
var RiskLevels = [10]int{5, 4, 3, 2, 1, -1, -2, -3, -4, -5}

// RiskBelowRange is the code for a score beneath every threshold.
const RiskBelowRange = -15

// CutoffTable holds the ten historical thresholds aligned with RiskLevels.
// Unknown thresholds stay 0 and still take part in comparisons.
type CutoffTable struct {
	UniversityID string      `json:"university_id" yaml:"university_id"`
	Thresholds   [10]float64 `json:"thresholds" yaml:"thresholds"`
}

// RiskAssessment is the banded position of a score against a cutoff table.
type RiskAssessment struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
	// DistanceFromCutoff is the score minus the +1 threshold; negative below the line.
	DistanceFromCutoff float64 `json:"distance_from_cutoff"`
}
