// internal/identity/identity.go
//
// Player identity for the puzzle client.
// Responsibilities:
//   - Look up the persisted player ID under a fixed key.
//   - Generate and persist a random UUID on first use.
//   - Keep working (for the current process) when the backing store fails.
//
// Notes:
//   - The backing store is a KV capability so tests can swap in the
//     in-memory implementation.
//   - An identity is never overwritten once persisted: nothing is written
//     after a failed read, and writes only fill an empty key.

package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PlayerIDKey is the fixed key the player ID is stored under.
const PlayerIDKey = "playerId"

// KV is a minimal string key-value store.
type KV interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// SetIfAbsent stores value under key unless key already holds a value.
	SetIfAbsent(ctx context.Context, key, value string) error
}

// Provider hands out the stable per-player identifier.
type Provider struct {
	kv    KV
	newID func() string

	mu     sync.Mutex
	cached string
}

// NewProvider builds a Provider over kv. A nil kv behaves as an unavailable store.
func NewProvider(kv KV) *Provider {
	return &Provider{kv: kv, newID: func() string { return uuid.NewString() }}
}

// GetOrCreate returns the persisted player ID, creating one if absent.
//
// Store failures are logged and tolerated: the generated ID is still returned
// and reused for the rest of this process, but will not survive a restart.
// A failed read never leads to a write.
func (p *Provider) GetOrCreate(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}

	if p.kv == nil {
		return p.sessionOnly()
	}

	id, ok, err := p.kv.Get(ctx, PlayerIDKey)
	if err != nil {
		log.Warn().Err(err).Msg("identity store unavailable; using a session-only player id")
		return p.sessionOnly()
	}
	if ok && id != "" {
		p.cached = id
		return id
	}

	id = p.newID()
	if err := p.kv.SetIfAbsent(ctx, PlayerIDKey, id); err != nil {
		log.Warn().Err(err).Msg("persist player id")
		p.cached = id
		return id
	}
	// Another process may have filled the key first; theirs wins.
	if stored, ok, err := p.kv.Get(ctx, PlayerIDKey); err == nil && ok && stored != "" {
		id = stored
	}
	log.Info().Str("player", id).Msg("created player id")
	p.cached = id
	return id
}

// sessionOnly caches a fresh id without touching the store. Callers hold p.mu.
func (p *Provider) sessionOnly() string {
	p.cached = p.newID()
	return p.cached
}
