// Package loadgen drives the HTTP API with generated candidates and checks
// that every accepted submission is scored.
package loadgen

import (
	"runtime"
	"time"
)

// Config holds configuration for one load run.
type Config struct {
	BaseURL       string
	Candidates    int
	Workers       int
	Timeout       time.Duration // per request
	PollTimeout   time.Duration // per submission, waiting for results
	PollInterval  time.Duration
	UniversityIDs []string // empty scores every university
	Seed          uint64
}

// DefaultConfig returns settings suitable for a local admitd.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:9080",
		Candidates:   1_000,
		Workers:      runtime.NumCPU() * 2,
		Timeout:      10 * time.Second,
		PollTimeout:  30 * time.Second,
		PollInterval: 100 * time.Millisecond,
		Seed:         1,
	}
}

// Stats summarizes a run.
type Stats struct {
	Generated  int
	Accepted   int
	Duplicate  int
	Failed     int
	Verified   int
	Incomplete int
	Duration   time.Duration
}

// Throughput returns accepted submissions per second.
func (s Stats) Throughput() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Accepted) / s.Duration.Seconds()
}
