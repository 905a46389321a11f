package queue

import "errors"

// Sentinel errors for enqueue.
var (
	ErrFull   = errors.New("queue full")
	ErrClosed = errors.New("queue closed")
)
