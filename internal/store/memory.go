// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// A lightweight key/value layer used in tests and when the local database
// cannot be opened.
//
// Characteristics:
//   - Stores string values keyed by name in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// Well-known keys.
const (
	// KeyStartTime holds the Unix seconds at which the current round started.
	KeyStartTime = "start_time"
	// KeyToken is where older clients persisted the bearer token. It is only
	// ever deleted, never read.
	KeyToken = "token"
)

// Store defines the local persistence interface.
// Implementations may be backed by memory (this file) or SQLite.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores or replaces a value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards values map
	values map[string]string // keyed by name
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{values: make(map[string]string)}
}

func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
