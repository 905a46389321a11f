// Package risk maps composite scores and grade averages onto admission risk
// bands.
package risk

import "github.com/okian/admitscore/internal/domain/model"

// Band labels.
const (
	LabelSafe       = "safe"
	LabelLikely     = "likely"
	LabelBorderline = "borderline"
	LabelReach      = "reach"
	LabelUnlikely   = "unlikely"
	LabelOutOfRange = "out-of-range"
)

// borderlineIndex is the position of the +1 threshold, the admission line.
const borderlineIndex = 4

// CutoffBand scans thresholds from the safest band down and returns the first
// band whose threshold the score meets. Scores beneath every threshold get
// model.RiskBelowRange.
func CutoffBand(score float64, t model.CutoffTable) model.RiskAssessment {
	code := model.RiskBelowRange
	for i, threshold := range t.Thresholds {
		if score >= threshold {
			code = model.RiskLevels[i]
			break
		}
	}
	return model.RiskAssessment{
		Code:               code,
		Label:              Label(code),
		DistanceFromCutoff: score - t.Thresholds[borderlineIndex],
	}
}

// Label names a risk code.
func Label(code int) string {
	switch {
	case code >= 4:
		return LabelSafe
	case code >= 2:
		return LabelLikely
	case code == 1:
		return LabelBorderline
	case code >= -2:
		return LabelReach
	case code >= -5:
		return LabelUnlikely
	default:
		return LabelOutOfRange
	}
}
