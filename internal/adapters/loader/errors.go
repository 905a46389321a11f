package loader

import "errors"

// Sentinel errors for catalog loading.
var (
	ErrUnsupportedFormat = errors.New("unsupported data file format")
	ErrInvalidCondition  = errors.New("invalid university condition")
	ErrDuplicateID       = errors.New("duplicate university id")
	ErrInvalidCell       = errors.New("invalid table cell")
)
