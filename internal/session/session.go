// internal/session/session.go
//
// Guess Submission Orchestrator and whole-puzzle operations.
// Responsibilities:
//   - Load, reset and advance: one remote call, then one wholesale replace.
//   - Submit a guess: optimistic "next slot is loading" transition, remote
//     call, authoritative replace, completion check.
//   - Refuse overlapping operations (ErrBusy) instead of interleaving them.
//
// Failure handling:
//   - Whole-puzzle failures leave the store at its previous snapshot.
//   - Submit failures leave the optimistic slot marked loading until the next
//     successful whole-puzzle replace.
//   - Nothing is retried; every failure is returned to the caller.

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/redoodle/internal/puzzle"
	"github.com/robalobadob/redoodle/internal/state"
	"github.com/robalobadob/redoodle/internal/wire"
)

// MaxPromptLength is the longest prompt, in characters, sent to the API.
const MaxPromptLength = 100

var (
	ErrBusy           = errors.New("another puzzle operation is in progress")
	ErrPuzzleComplete = errors.New("no guesses remaining for this puzzle")
	ErrEmptyPrompt    = errors.New("prompt is empty")
)

// API is the remote puzzle service.
type API interface {
	FetchPuzzle(ctx context.Context, playerID string) (wire.Snapshot, error)
	ResetPuzzle(ctx context.Context, playerID string) (wire.Snapshot, error)
	NextPuzzle(ctx context.Context, playerID string) (wire.Snapshot, error)
	SubmitGuess(ctx context.Context, playerID, guess string) (wire.Snapshot, error)
}

// Identity supplies the player ID for every remote call.
type Identity interface {
	GetOrCreate(ctx context.Context) string
}

// Session drives puzzle operations against a state.Store.
type Session struct {
	api   API
	ident Identity
	store *state.Store

	busy atomic.Bool

	mu         sync.Mutex // guards onComplete
	onComplete []func(puzzle.State)
}

// New wires a Session.
func New(api API, ident Identity, st *state.Store) *Session {
	return &Session{api: api, ident: ident, store: st}
}

// OnComplete registers fn to run once each time a submission completes the
// puzzle. It receives the completed snapshot.
func (s *Session) OnComplete(fn func(puzzle.State)) {
	s.mu.Lock()
	s.onComplete = append(s.onComplete, fn)
	s.mu.Unlock()
}

// Load fetches the player's current puzzle.
func (s *Session) Load(ctx context.Context) (puzzle.State, error) {
	return s.replaceFrom(ctx, "fetch", s.api.FetchPuzzle)
}

// Reset returns the current puzzle to its initial state.
func (s *Session) Reset(ctx context.Context) (puzzle.State, error) {
	return s.replaceFrom(ctx, "reset", s.api.ResetPuzzle)
}

// Advance moves the player on to the next puzzle.
func (s *Session) Advance(ctx context.Context) (puzzle.State, error) {
	return s.replaceFrom(ctx, "advance", s.api.NextPuzzle)
}

func (s *Session) replaceFrom(ctx context.Context, op string, call func(context.Context, string) (wire.Snapshot, error)) (puzzle.State, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return s.store.Snapshot(), ErrBusy
	}
	defer s.busy.Store(false)

	player := s.ident.GetOrCreate(ctx)
	w, err := call(ctx, player)
	if err != nil {
		log.Error().Err(err).Str("op", op).Str("player", player).Msg("puzzle request failed")
		return s.store.Snapshot(), fmt.Errorf("%s puzzle: %w", op, err)
	}
	st := s.applyAuthoritative(w)
	log.Debug().Str("op", op).Str("puzzle", st.PuzzleName).Int("guesses", st.GuessesMade()).Msg("puzzle replaced")
	return st, nil
}

// SubmitGuess sends prompt as the next guess and returns the authoritative
// snapshot. The puzzle-complete listeners run if the result completes it.
func (s *Session) SubmitGuess(ctx context.Context, prompt string) (puzzle.State, error) {
	prompt = NormalizePrompt(prompt)
	if prompt == "" {
		return s.store.Snapshot(), ErrEmptyPrompt
	}
	if !s.busy.CompareAndSwap(false, true) {
		return s.store.Snapshot(), ErrBusy
	}
	defer s.busy.Store(false)

	cur := s.store.Snapshot()
	next := cur.GuessesMade()
	if next >= cur.GuessesTotal {
		return cur, ErrPuzzleComplete
	}

	s.beginGuess(next)

	player := s.ident.GetOrCreate(ctx)
	w, err := s.api.SubmitGuess(ctx, player, prompt)
	if err != nil {
		log.Error().Err(err).Str("player", player).Int("slot", next).Msg("submit guess failed")
		return s.store.Snapshot(), fmt.Errorf("submit guess: %w", err)
	}

	st := s.applyAuthoritative(w)
	if st.IsComplete() {
		log.Info().Str("puzzle", st.PuzzleName).Float64("score", *st.SimilarityScore).Msg("puzzle complete")
		s.fireComplete(st)
	}
	return st, nil
}

// beginGuess is the optimistic transition: slot index goes into its loading
// state and becomes the displayed slot.
func (s *Session) beginGuess(index int) {
	s.store.PatchGuessSlot(index, puzzle.Image.WithLoading)
	s.store.SelectGuess(index)
}

// applyAuthoritative is the authoritative transition: the server snapshot
// replaces everything, including the selected index.
func (s *Session) applyAuthoritative(w wire.Snapshot) puzzle.State {
	st := wire.ToDomainState(w)
	s.store.Replace(st)
	return st
}

func (s *Session) fireComplete(st puzzle.State) {
	s.mu.Lock()
	fns := append([]func(puzzle.State){}, s.onComplete...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(st.Clone())
	}
}

// NormalizePrompt trims surrounding whitespace and caps the prompt at
// MaxPromptLength characters.
func NormalizePrompt(p string) string {
	p = strings.TrimSpace(p)
	if utf8.RuneCountInString(p) <= MaxPromptLength {
		return p
	}
	r := []rune(p)
	return strings.TrimSpace(string(r[:MaxPromptLength]))
}
