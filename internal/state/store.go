// internal/state/store.go
//
// Puzzle State Store: the single owner of the current puzzle snapshot.
// Responsibilities:
//   - Hold exactly one puzzle.State (the loading snapshot before first load).
//   - Expose the only mutation entry points: Replace, PatchGuessSlot, SelectGuess.
//   - Notify observers synchronously with a copy of every new snapshot.
//
// Notes:
//   - Callers never get a reference into the stored snapshot; Snapshot and
//     observers receive deep copies.
//   - Observers run after the lock is released, so they may read the store.
//   - Last write wins; no batching.
//   - Notification order matches write order for serialized callers only.

package state

import (
	"sort"
	"sync"

	"github.com/robalobadob/redoodle/internal/puzzle"
)

// Observer receives every new snapshot.
type Observer func(puzzle.State)

// Store holds the current puzzle snapshot.
type Store struct {
	mu  sync.RWMutex // guards cur
	cur puzzle.State

	obsMu  sync.Mutex // guards obs and nextID
	obs    map[int]Observer
	nextID int
}

// New builds a Store holding initial.
func New(initial puzzle.State) *Store {
	return &Store{cur: initial.Clone(), obs: make(map[int]Observer)}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() puzzle.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Clone()
}

// Subscribe registers o and returns a func that removes it.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextID
	s.nextID++
	s.obs[id] = o
	s.obsMu.Unlock()
	return func() {
		s.obsMu.Lock()
		delete(s.obs, id)
		s.obsMu.Unlock()
	}
}

// Replace swaps in next wholesale.
func (s *Store) Replace(next puzzle.State) {
	s.mu.Lock()
	s.cur = next.Clone()
	snap := s.cur.Clone()
	s.mu.Unlock()
	s.notify(snap)
}

// PatchGuessSlot applies fn to guess slot index, leaving everything else as is.
// It returns false (and does nothing) when index is out of range.
func (s *Store) PatchGuessSlot(index int, fn func(puzzle.Image) puzzle.Image) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.cur.GuessImages) {
		s.mu.Unlock()
		return false
	}
	guesses := make([]puzzle.Image, len(s.cur.GuessImages))
	copy(guesses, s.cur.GuessImages)
	guesses[index] = fn(guesses[index])
	s.cur.GuessImages = guesses
	snap := s.cur.Clone()
	s.mu.Unlock()
	s.notify(snap)
	return true
}

// SelectGuess sets the carousel index. Indexes outside [0, GuessesTotal) are
// ignored and false is returned.
func (s *Store) SelectGuess(index int) bool {
	s.mu.Lock()
	if !s.cur.ValidGuessIndex(index) {
		s.mu.Unlock()
		return false
	}
	s.cur.CurrentSelectedGuessIndex = index
	snap := s.cur.Clone()
	s.mu.Unlock()
	s.notify(snap)
	return true
}

// notify runs outside s.mu. Observers see mutations in write order only when
// callers serialize their mutations, as session does.
func (s *Store) notify(snap puzzle.State) {
	s.obsMu.Lock()
	ids := make([]int, 0, len(s.obs))
	for id := range s.obs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	list := make([]Observer, 0, len(ids))
	for _, id := range ids {
		list = append(list, s.obs[id])
	}
	s.obsMu.Unlock()

	for _, o := range list {
		o(snap.Clone())
	}
}
