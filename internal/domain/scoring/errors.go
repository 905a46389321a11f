package scoring

import (
	"errors"

	"github.com/okian/admitscore/internal/domain/model"
)

// Sentinel errors matching each failure kind.
var (
	ErrEligibility       = errors.New("eligibility failed")
	ErrMissingData       = errors.New("missing data")
	ErrComputation       = errors.New("formula error")
	ErrUnknownUniversity = errors.New("unknown university")
)

// Finer-grained missing-data causes.
var (
	ErrMissingSubject    = errors.New("subject score missing")
	ErrMissingTableEntry = errors.New("table entry missing")
	ErrUnknownCalculator = errors.New("unknown calculator kind")
)

// Failure is a recoverable per-university scoring failure.
type Failure struct {
	Kind   model.FailureKind
	Reason string
	cause  error
}

func (f *Failure) Error() string { return string(f.Kind) + ": " + f.Reason }

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error { return f.cause }

// Is matches the sentinel of the failure kind.
func (f *Failure) Is(target error) bool {
	switch f.Kind {
	case model.FailureEligibility:
		return target == ErrEligibility
	case model.FailureMissingData:
		return target == ErrMissingData
	case model.FailureComputation:
		return target == ErrComputation
	case model.FailureUnknownUniversity:
		return target == ErrUnknownUniversity
	}
	return false
}

func fail(kind model.FailureKind, reason string, cause error) *Failure {
	return &Failure{Kind: kind, Reason: reason, cause: cause}
}

func computationFailure(reason string) *Failure {
	return fail(model.FailureComputation, reason, nil)
}
