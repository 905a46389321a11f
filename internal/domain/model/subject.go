// Package model contains domain models passed between layers.
package model

import "strings"

// SubjectKind classifies a submitted exam subject.
type SubjectKind string

// Subject kinds.
const (
	KindKorean  SubjectKind = "korean"
	KindMath    SubjectKind = "math"
	KindEnglish SubjectKind = "english"
	KindHistory SubjectKind = "history"
	KindSociety SubjectKind = "society"
	KindScience SubjectKind = "science"
	KindForeign SubjectKind = "foreign"
)

// IsInquiry reports whether the kind belongs to the inquiry group.
func (k SubjectKind) IsInquiry() bool { return k == KindSociety || k == KindScience }

// GradeKeyed reports whether the subject's table is keyed by grade rather than standard score.
func (k SubjectKind) GradeKeyed() bool { return k == KindEnglish || k == KindHistory }

// RawSubjectScore is one subject as reported for a candidate.
// Zero values mean "not reported".
type RawSubjectScore struct {
	Kind          SubjectKind `json:"kind" yaml:"kind"`
	Subject       string      `json:"subject" yaml:"subject"` // table subject name, e.g. "math-calculus", "physics-1"
	StandardScore int         `json:"standard_score,omitempty" yaml:"standard_score,omitempty"`
	Percentile    int         `json:"percentile,omitempty" yaml:"percentile,omitempty"`
	Grade         int         `json:"grade,omitempty" yaml:"grade,omitempty"`
}

// Reported reports whether the subject carries a grade, the minimum for any lookup.
func (r RawSubjectScore) Reported() bool { return r.Subject != "" && r.Grade > 0 }

// MathTrack is the elective chosen within mathematics.
type MathTrack string

// Math tracks.
const (
	TrackUnknown    MathTrack = ""
	TrackCalculus   MathTrack = "calculus"
	TrackGeometry   MathTrack = "geometry"
	TrackStatistics MathTrack = "statistics"
)

// TrackOf derives the math elective from a subject name.
func TrackOf(subject string) MathTrack {
	s := strings.ToLower(subject)
	switch {
	case strings.Contains(s, "calculus"), strings.Contains(s, "미적"):
		return TrackCalculus
	case strings.Contains(s, "geometry"), strings.Contains(s, "기하"):
		return TrackGeometry
	case strings.Contains(s, "statistics"), strings.Contains(s, "확통"), strings.Contains(s, "확률"):
		return TrackStatistics
	default:
		return TrackUnknown
	}
}

// Candidate is the full submission of one student.
type Candidate struct {
	ID     string            `json:"id" yaml:"id"`
	Scores []RawSubjectScore `json:"scores" yaml:"scores"`
}

// First returns the first reported score of the given kind.
func (c Candidate) First(kind SubjectKind) (RawSubjectScore, bool) {
	for _, s := range c.Scores {
		if s.Kind == kind {
			return s, true
		}
	}
	return RawSubjectScore{}, false
}

// Inquiry returns inquiry scores of the given kind in submission order, capped at two.
func (c Candidate) Inquiry(kind SubjectKind) []RawSubjectScore {
	var out []RawSubjectScore
	for _, s := range c.Scores {
		if s.Kind == kind && s.Subject != "" {
			out = append(out, s)
			if len(out) == 2 {
				break
			}
		}
	}
	return out
}

// MathTrack returns the math elective of the candidate.
func (c Candidate) MathTrack() MathTrack {
	m, ok := c.First(KindMath)
	if !ok {
		return TrackUnknown
	}
	return TrackOf(m.Subject)
}
