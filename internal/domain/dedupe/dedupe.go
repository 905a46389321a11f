// Package dedupe tracks recently accepted submission ids so a resubmitted
// scoring request is processed at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper records seen submission ids.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded and records it
	// if not. The check and the insert are atomic.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a submission rejected downstream can be retried.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// window keeps the most recent ids; the oldest is evicted once full.
// maxSize <= 0 keeps every id.
type window struct {
	mu      sync.Mutex
	order   *list.List
	index   map[string]*list.Element
	maxSize int
}

// NewInMemoryDeduper creates a Deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	w := &window{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(w)
	}
	w.order = list.New()
	w.index = make(map[string]*list.Element)
	return w
}

func (w *window) SeenAndRecord(_ context.Context, id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.index[id]; ok {
		return true
	}
	if w.maxSize > 0 && w.order.Len() >= w.maxSize {
		oldest := w.order.Back()
		w.order.Remove(oldest)
		delete(w.index, oldest.Value.(string))
	}
	w.index[id] = w.order.PushFront(id)
	return false
}

func (w *window) Unrecord(_ context.Context, id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e, ok := w.index[id]; ok {
		w.order.Remove(e)
		delete(w.index, id)
	}
}

func (w *window) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return int64(w.order.Len())
}
