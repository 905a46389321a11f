package repository

import "errors"

// Sentinel errors for evaluation storage.
var (
	ErrNotFound          = errors.New("evaluations not found")
	ErrInvalidEvaluation = errors.New("evaluation without submission id")
	ErrNoPath            = errors.New("sqlite path not specified")
)
