package model

import "time"

// Job is an asynchronous request to score one candidate against many universities.
type Job struct {
	SubmissionID  string
	Candidate     Candidate
	UniversityIDs []string
	AcceptedAt    time.Time
}

// Evaluation is a stored composite with its optional cutoff assessment.
type Evaluation struct {
	SubmissionID string          `json:"submission_id"`
	CandidateID  string          `json:"candidate_id"`
	Result       CompositeResult `json:"result"`
	Risk         *RiskAssessment `json:"risk,omitempty"`
	ScoredAt     time.Time       `json:"scored_at"`
}
