// internal/store/memory.go
//
// In-memory implementation of the Store interface for player progress.
// Used by the dev puzzle API, where durability is not required.
//
// Characteristics:
//   - Stores *game.Progress objects keyed by player ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns a copy; callers must Save to persist changes.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/redoodle/internal/game"
)

// ErrNotFound is returned by Get for unknown players.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for player progress.
type Store interface {
	// Save persists or updates a player's progress.
	Save(ctx context.Context, p *game.Progress) error

	// Get retrieves progress by player ID, or ErrNotFound.
	Get(ctx context.Context, playerID string) (*game.Progress, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex              // guards players map
	players map[string]*game.Progress // keyed by Progress.PlayerID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{players: make(map[string]*game.Progress)}
}

// Save adds or updates the progress in the map.
func (m *memory) Save(ctx context.Context, p *game.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.PlayerID] = clone(p)
	return nil
}

// Get looks up progress by player ID.
func (m *memory) Get(ctx context.Context, playerID string) (*game.Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.players[playerID]; ok {
		return clone(p), nil
	}
	return nil, ErrNotFound
}

func clone(p *game.Progress) *game.Progress {
	cp := *p
	cp.Guesses = append([]game.Guess(nil), p.Guesses...)
	if p.Score != nil {
		s := *p.Score
		cp.Score = &s
	}
	return &cp
}
