package risk

import "math"

// Evaluation labels.
const (
	RatingExcellent = "excellent"
	RatingSuitable  = "suitable"
	RatingCaution   = "caution"
	RatingDanger    = "danger"
	OverallSafe     = "safe"
)

const maxSubjectRisk = 70

// GradePair is a recommended grade alongside the student's grade.
type GradePair struct {
	Subject     string  `json:"subject"`
	Recommended float64 `json:"recommended"`
	Student     float64 `json:"student"`
}

// SubjectEvaluation rates one subject of a series.
type SubjectEvaluation struct {
	Subject    string  `json:"subject"`
	Difference float64 `json:"difference"`
	Risk       int     `json:"risk"`
	Rating     string  `json:"rating"`
}

// SeriesEvaluation summarizes the fit of a student to a series.
type SeriesEvaluation struct {
	Subjects          []SubjectEvaluation `json:"subjects"`
	TotalRisk         int                 `json:"total_risk"`
	NormalizedRisk    int                 `json:"normalized_risk"`
	Overall           string              `json:"overall"`
	ImprovementNeeded []string            `json:"improvement_needed"`
}

// EvaluateSeries rates each subject by how far the student's grade trails the
// recommendation and normalizes the total to 0..100.
func EvaluateSeries(pairs []GradePair) SeriesEvaluation {
	out := SeriesEvaluation{Subjects: make([]SubjectEvaluation, 0, len(pairs))}
	for _, p := range pairs {
		diff := p.Student - p.Recommended
		e := SubjectEvaluation{Subject: p.Subject, Difference: diff, Risk: subjectRisk(diff), Rating: rating(diff)}
		if e.Rating == RatingDanger {
			out.ImprovementNeeded = append(out.ImprovementNeeded, p.Subject)
		}
		out.TotalRisk += e.Risk
		out.Subjects = append(out.Subjects, e)
	}
	if n := len(pairs); n > 0 {
		out.NormalizedRisk = int(math.Round(float64(out.TotalRisk) / float64(n*maxSubjectRisk) * 100))
	}
	switch {
	case out.NormalizedRisk < 20:
		out.Overall = OverallSafe
	case out.NormalizedRisk < 50:
		out.Overall = RatingCaution
	default:
		out.Overall = RatingDanger
	}
	return out
}

func subjectRisk(diff float64) int {
	switch {
	case diff <= 0:
		return 0
	case diff <= 1:
		return 10
	case diff <= 2:
		return 30
	case diff <= 3:
		return 50
	default:
		return maxSubjectRisk
	}
}

func rating(diff float64) string {
	switch {
	case diff <= 0:
		return RatingExcellent
	case diff <= 0.5:
		return RatingSuitable
	case diff <= 1.5:
		return RatingCaution
	default:
		return RatingDanger
	}
}
