// Package eligibility decides whether a candidate's subject choices satisfy a
// university's hard track constraints before any score is converted.
package eligibility

import (
	"fmt"

	"github.com/okian/admitscore/internal/domain/model"
)

// Failure messages.
const (
	MsgCalculusOrGeometry = "calculus or geometry required"
	MsgStatistics         = "probability and statistics required"
	msgInquiryCount       = "%d %s inquiry subjects required"
	msgUnknownMath        = "unsupported math requirement %q"
	msgUnknownInquiry     = "unsupported inquiry requirement %q"
)

// Verdict is the outcome of a check.
type Verdict struct {
	Valid   bool
	Message string
}

// Pass is the verdict for a satisfied condition.
var Pass = Verdict{Valid: true}

// Checker evaluates track constraints.
type Checker struct{}

// New returns a Checker.
func New() *Checker { return &Checker{} }

// Check returns the first violated constraint, math before inquiry.
func (c *Checker) Check(cand model.Candidate, cond model.UniversityCondition) Verdict {
	if v := checkMath(cand.MathTrack(), cond.Math); !v.Valid {
		return v
	}
	return checkInquiry(cand, cond.Inquiry)
}

func checkMath(track model.MathTrack, req model.MathRequirement) Verdict {
	switch req {
	case model.MathCalculusOrGeometry:
		if track == model.TrackStatistics {
			return Verdict{Message: MsgCalculusOrGeometry}
		}
	case model.MathStatistics:
		if track != model.TrackStatistics {
			return Verdict{Message: MsgStatistics}
		}
	case model.MathAny:
	default:
		return Verdict{Message: fmt.Sprintf(msgUnknownMath, req)}
	}
	return Pass
}

func checkInquiry(cand model.Candidate, req model.InquiryRequirement) Verdict {
	if req.MinCount <= 0 {
		return Pass
	}
	if !req.Kind.IsInquiry() {
		return Verdict{Message: fmt.Sprintf(msgUnknownInquiry, req.Kind)}
	}
	if len(cand.Inquiry(req.Kind)) < req.MinCount {
		return Verdict{Message: fmt.Sprintf(msgInquiryCount, req.MinCount, req.Kind)}
	}
	return Pass
}
