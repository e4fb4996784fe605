// internal/game/engine.go
//
// Dev puzzle engine for a single player's progress.
// Responsibilities:
//   - Create progress on a puzzle with a fixed guess quota.
//   - Validate and apply guesses (trimmed, capped at MaxGuessLength).
//   - Produce each guess image from the previous image and the prompt.
//   - Score the final guess against the goal.
//   - Reset and advance.
//
// Notes:
//   - Image generation and similarity are stand-ins: images are flat PNGs
//     derived from prompt hashes, similarity is word overlap with the goal.

package game

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/redoodle/internal/catalog"
)

const (
	// DefaultTotal is the guess quota per puzzle.
	DefaultTotal = 3
	// MaxGuessLength caps prompts, in characters.
	MaxGuessLength = 100
)

var (
	ErrFinished   = errors.New("no guesses remaining")
	ErrEmptyGuess = errors.New("empty guess")
)

// New starts a player on puzzleNum with no guesses.
func New(playerID string, puzzleNum int) *Progress {
	return &Progress{
		PlayerID:  playerID,
		PuzzleNum: puzzleNum,
		Total:     DefaultTotal,
		Guesses:   []Guess{},
	}
}

// Finished reports whether the quota has been used.
func (p *Progress) Finished() bool { return len(p.Guesses) >= p.Total }

// ApplyGuess validates guess, generates its image and appends it.
// The final guess also sets Score and FinalPrompt.
func (p *Progress) ApplyGuess(guess string, pz catalog.Puzzle) (Guess, error) {
	if p.Finished() {
		return Guess{}, ErrFinished
	}
	guess = truncate(strings.TrimSpace(guess), MaxGuessLength)
	if guess == "" {
		return Guess{}, ErrEmptyGuess
	}

	// Each guess transforms the previous image; the first one transforms the start image.
	prev := Render(pz.StartPrompt)
	if n := len(p.Guesses); n > 0 {
		prev = p.Guesses[n-1].Image
	}
	g := Guess{Prompt: guess, Image: Render(prev + "\n" + guess)}
	p.Guesses = append(p.Guesses, g)

	if p.Finished() {
		s := Similarity(guess, pz.GoalPrompt)
		p.Score = &s
		p.FinalPrompt = guess
	}
	return g, nil
}

// Reset clears guesses on the current puzzle.
func (p *Progress) Reset() {
	p.Guesses = []Guess{}
	p.Score = nil
	p.FinalPrompt = ""
}

// Advance moves on to puzzleNum with a clean slate.
func (p *Progress) Advance(puzzleNum int) {
	p.Reset()
	p.PuzzleNum = puzzleNum
}

// Similarity is the word-overlap (Jaccard) percentage of a and b, rounded to
// one decimal.
func Similarity(a, b string) float64 {
	wa, wb := words(a), words(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return math.Round(float64(inter)/float64(union)*1000) / 10
}

func words(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		out[w] = struct{}{}
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
