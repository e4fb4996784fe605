// internal/wire/transform.go
//
// Wire → domain transformation.
// Responsibilities:
//   - Back-fill the guess list with placeholders up to guesses_total.
//   - Pick the default carousel slot (the newest guess).
//   - Name the puzzle from its sequence number.

package wire

import (
	"strconv"

	"github.com/robalobadob/redoodle/internal/puzzle"
)

// ToDomainState converts a wire snapshot into the client puzzle model.
// It is pure: no I/O, no shared state.
//
// The guess list is back-filled with placeholders up to GuessesTotal; entries
// beyond GuessesTotal are ignored. The selected index is the number of real
// guesses minus one, or 0 when none exist.
func ToDomainState(w Snapshot) puzzle.State {
	total := w.GuessesTotal
	if total < 0 {
		total = 0
	}

	guesses := make([]puzzle.Image, total)
	made := 0
	for i := range guesses {
		var g *Image
		if i < len(w.GuessImages) {
			g = w.GuessImages[i]
		}
		if g == nil {
			guesses[i] = puzzle.Placeholder()
			continue
		}
		guesses[i] = puzzle.Image{
			Payload: g.Base64Image,
			Caption: g.PromptText(),
		}
		made++
	}
	selected := 0
	if made > 0 {
		selected = made - 1
	}

	return puzzle.State{
		StartImage: puzzle.Image{
			Payload: w.StartImage.Base64Image,
			Caption: w.StartImage.PromptText(),
			Heading: puzzle.OriginalImageHeading,
		},
		GoalImage: puzzle.Image{
			Payload: w.GoalImage.Base64Image,
			Caption: w.GoalImage.PromptText(),
			Heading: puzzle.GoalImageHeading,
		},
		GuessImages:               guesses,
		GuessesTotal:              total,
		PuzzleName:                "Puzzle " + strconv.Itoa(w.PuzzleNum),
		CurrentSelectedGuessIndex: selected,
		SimilarityScore:           copyFloat(w.SimilarityScore),
		FinalPrompt:               copyString(w.FinalPrompt),
	}
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
