// Package queue buffers asynchronous scoring jobs between the API and the
// worker pool.
package queue

import (
	"context"
	"sync"

	"github.com/okian/admitscore/internal/domain/model"
	"github.com/okian/admitscore/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Job is the payload flowing through the queue.
type Job = model.Job

// Queue provides non-blocking enqueue and channel-based dequeue.
type Queue interface {
	// Enqueue adds a job without blocking. It fails with ErrFull or ErrClosed.
	Enqueue(ctx context.Context, j Job) error

	// Dequeue returns the channel jobs are delivered on. It is closed after Close
	// once drained.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the number of queued jobs.
	Len(ctx context.Context) int

	// Close stops accepting jobs.
	Close() error
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0, q.capacity)
	return q
}

// Enqueue adds a job.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error { //nolint:gocritic // jobs travel by value
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError("context_cancelled")
		return err
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs), q.capacity)
		return nil
	default:
		metrics.RecordQueueEnqueueError("full")
		return ErrFull
	}
}

// Dequeue returns the job channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Job {
	return q.jobs
}

// Len returns the queued job count.
func (q *InMemoryQueue) Len(_ context.Context) int {
	n := len(q.jobs)
	metrics.UpdateQueueSize(n, q.capacity)
	return n
}

// Capacity returns the configured capacity.
func (q *InMemoryQueue) Capacity() int { return q.capacity }

// Close stops accepting jobs; queued jobs remain readable.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
