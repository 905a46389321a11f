package service

import "errors"

// Sentinel errors returned by Service.
var (
	ErrNotStarted          = errors.New("service not started")
	ErrInvalidCandidate    = errors.New("candidate id is required")
	ErrTooManyUniversities = errors.New("too many universities requested")
	ErrNoUniversities      = errors.New("no universities to score")
)
