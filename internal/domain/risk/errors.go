package risk

import "errors"

// Sentinel errors for risk evaluation.
var (
	ErrUnknownTier = errors.New("unknown university tier")
)
