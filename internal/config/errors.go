package config

import "errors"

// Sentinel errors returned by Load and Validate.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	ErrUnknownStore  = errors.New("unknown result store")
)
