// internal/identity/memory.go
//
// In-memory implementation of KV.
// Used in tests and when durability is not required.
//
// Characteristics:
//   - Values kept in a map guarded by an RWMutex.
//   - State is lost when the process restarts.

package identity

import (
	"context"
	"sync"
)

// Memory is a map-backed KV.
type Memory struct {
	mu     sync.RWMutex      // guards values
	values map[string]string // keyed by KV key
}

// NewMemory constructs an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get looks up key.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// SetIfAbsent adds key unless it is already present.
func (m *Memory) SetIfAbsent(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		m.values[key] = value
	}
	return nil
}
