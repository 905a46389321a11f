package lookup

import "errors"

// Sentinel errors for table lookups.
var (
	ErrSubjectNotFound    = errors.New("subject table not found")
	ErrKeyNotFound        = errors.New("raw score key not found")
	ErrUniversityNotFound = errors.New("university column not found")
	ErrEmptyTable         = errors.New("table is empty")
)
