// internal/game/types.go
//
// Core type definitions for the dev puzzle engine.
// Defines:
//   - Guess: one submitted prompt and the image it produced.
//   - Progress: one player's state on their current puzzle.

package game

// Guess is one submitted prompt and its generated image (bare base64 PNG).
type Guess struct {
	Prompt string
	Image  string
}

// Progress holds a player's state on their current puzzle.
type Progress struct {
	PlayerID    string   // Opaque player identifier from the client.
	PuzzleNum   int      // Catalog number of the current puzzle.
	Total       int      // Guess quota for the puzzle.
	Guesses     []Guess  // Guesses in submission order.
	Score       *float64 // Similarity to the goal, set on the final guess.
	FinalPrompt string   // Text of the final guess once finished.
}
