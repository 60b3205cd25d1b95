// Package threshold holds the two representations of "the line": the
// committed value persisted per metric, and the ephemeral transient value
// broadcast during a drag.
package threshold

import (
	"math"
	"sync"
)

// DefaultValue is returned for metrics that never had a line set, and is
// the clamp target for non-finite inputs.
const DefaultValue = 0.5

// Store is the single source of truth for committed thresholds outside an
// active interaction. Values are scoped to a metric key.
type Store struct {
	mu        sync.Mutex
	committed map[string]float64
}

func NewStore() *Store {
	return &Store{committed: make(map[string]float64)}
}

// Committed returns the committed line for the metric, DefaultValue if unset.
func (s *Store) Committed(key string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.committed[key]
	if !ok {
		return DefaultValue
	}
	return v
}

// Has reports whether a line was ever committed for the metric.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.committed[key]
	return ok
}

// SetCommitted stores the committed line. Non-finite values are clamped to
// DefaultValue rather than propagated.
func (s *Store) SetCommitted(key string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = DefaultValue
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed[key] = v
}

// Reset drops the committed line for the metric. Called on metric/dataset
// change unless the caller explicitly carries the line over (deep link).
func (s *Store) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.committed, key)
}
