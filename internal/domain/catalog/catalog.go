// Package catalog bundles the read-only data of one scoring session: the
// lookup store, university conditions and historical cutoffs.
package catalog

import (
	"errors"
	"sort"
	"sync"

	"github.com/okian/admitscore/internal/domain/lookup"
	"github.com/okian/admitscore/internal/domain/model"
)

// ErrClosed is returned by accessors after Close.
var ErrClosed = errors.New("catalog closed")

// Catalog is constructed once per session and shared read-only between
// concurrent scorers.
type Catalog struct {
	mu         sync.RWMutex
	closed     bool
	store      *lookup.Store
	conditions map[string]model.UniversityCondition
	cutoffs    map[string]model.CutoffTable
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithStore sets the lookup store.
func WithStore(s *lookup.Store) Option {
	return func(c *Catalog) { c.store = s }
}

// WithConditions registers university conditions by id. Later duplicates win.
func WithConditions(conds ...model.UniversityCondition) Option {
	return func(c *Catalog) {
		for _, u := range conds {
			c.conditions[u.ID] = u
		}
	}
}

// WithCutoffs registers cutoff tables by university id.
func WithCutoffs(tables ...model.CutoffTable) Option {
	return func(c *Catalog) {
		for _, t := range tables {
			c.cutoffs[t.UniversityID] = t
		}
	}
}

// New builds a Catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		store:      lookup.NewStore(),
		conditions: make(map[string]model.UniversityCondition),
		cutoffs:    make(map[string]model.CutoffTable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the lookup store, or nil once closed.
func (c *Catalog) Store() *lookup.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil
	}
	return c.store
}

// Condition returns the condition for a university id.
func (c *Catalog) Condition(id string) (model.UniversityCondition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return model.UniversityCondition{}, false
	}
	u, ok := c.conditions[id]
	return u, ok
}

// Cutoffs returns the cutoff table for a university id.
func (c *Catalog) Cutoffs(id string) (model.CutoffTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return model.CutoffTable{}, false
	}
	t, ok := c.cutoffs[id]
	return t, ok
}

// IDs returns all university ids in sorted order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil
	}
	ids := make([]string, 0, len(c.conditions))
	for id := range c.conditions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Conditions returns a copy of all conditions.
func (c *Catalog) Conditions() []model.UniversityCondition {
	ids := c.IDs()
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.UniversityCondition, 0, len(ids))
	for _, id := range ids {
		if u, ok := c.conditions[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// Len returns the number of conditions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.conditions)
}

// Close ends the session. Subsequent lookups behave as if the catalog were empty.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	c.store = nil
	c.conditions = map[string]model.UniversityCondition{}
	c.cutoffs = map[string]model.CutoffTable{}
	return nil
}
