// Package carousel tracks which guess slot is displayed.
//
// The controller keeps no state of its own: selection lives in the store's
// snapshot, so an authoritative replace (which recomputes the selection to
// the newest guess) always wins over an earlier manual choice.
package carousel

import (
	"github.com/robalobadob/redoodle/internal/puzzle"
	"github.com/robalobadob/redoodle/internal/state"
)

// Indicator is the view data for one guess slot selector.
type Indicator struct {
	Index    int
	Caption  string
	Guessed  bool
	Selected bool
}

// Controller handles user selection against a state.Store.
type Controller struct {
	store *state.Store
}

// New returns a Controller bound to st.
func New(st *state.Store) *Controller {
	return &Controller{store: st}
}

// Select shows guess slot index. Out-of-range indexes are ignored.
func (c *Controller) Select(index int) bool {
	return c.store.SelectGuess(index)
}

// Current returns the selected index and its image.
func (c *Controller) Current() (int, puzzle.Image) {
	st := c.store.Snapshot()
	img, _ := st.SelectedGuess()
	return st.CurrentSelectedGuessIndex, img
}

// Indicators lists one entry per guess slot.
func (c *Controller) Indicators() []Indicator {
	st := c.store.Snapshot()
	out := make([]Indicator, len(st.GuessImages))
	for i, img := range st.GuessImages {
		caption := img.Caption
		if img.DisplayPlaceholder {
			caption = puzzle.ImagePlaceholderCaption
		}
		out[i] = Indicator{
			Index:    i,
			Caption:  caption,
			Guessed:  !img.DisplayPlaceholder,
			Selected: i == st.CurrentSelectedGuessIndex,
		}
	}
	return out
}

// FinalComparison returns the last guess slot and the goal image, as shown
// once the puzzle is complete. ok is false when the puzzle has no guess slots.
func (c *Controller) FinalComparison() (final, goal puzzle.Image, ok bool) {
	st := c.store.Snapshot()
	if st.GuessesTotal <= 0 || len(st.GuessImages) < st.GuessesTotal {
		return puzzle.Image{}, st.GoalImage, false
	}
	return st.GuessImages[st.GuessesTotal-1], st.GoalImage, true
}
