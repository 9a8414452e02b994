package cache

import (
	"context"
	"sync"
	"time"
)

// pruneEvery is the number of stores between sweeps of stale entries
const pruneEvery = 1024

// Memory is an in-process Backend. Entries older than maxAge are swept
// periodically; a non-positive maxAge keeps entries forever.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[V]
	maxAge  time.Duration
	stores  int
}

// NewMemory creates an in-process backend
func NewMemory[V any](maxAge time.Duration) *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]Entry[V]),
		maxAge:  maxAge,
	}
}

// Load returns the entry stored at key
func (m *Memory[V]) Load(_ context.Context, key string) (Entry[V], bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

// Store writes the entry at key, last write wins
func (m *Memory[V]) Store(_ context.Context, key string, entry Entry[V]) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry
	m.stores++
	if m.maxAge > 0 && m.stores%pruneEvery == 0 {
		m.prune(entry.ComputedAt)
	}
	return nil
}

// Len returns the number of stored entries
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// prune drops entries older than maxAge relative to now; callers hold the write lock
func (m *Memory[V]) prune(now time.Time) {
	for k, e := range m.entries {
		if now.Sub(e.ComputedAt) >= m.maxAge {
			delete(m.entries, k)
		}
	}
}
