package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/redoodle/internal/puzzle"
	"github.com/robalobadob/redoodle/internal/state"
)

func twoOfThree() puzzle.State {
	return puzzle.State{
		GoalImage: puzzle.Image{Payload: "goal", Heading: puzzle.GoalImageHeading},
		GuessImages: []puzzle.Image{
			{Payload: "a", Caption: "first"},
			{Payload: "b", Caption: "second"},
			puzzle.Placeholder(),
		},
		GuessesTotal:              3,
		CurrentSelectedGuessIndex: 1,
	}
}

func TestSelect(t *testing.T) {
	st := state.New(twoOfThree())
	c := New(st)

	require.True(t, c.Select(0))
	idx, img := c.Current()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "first", img.Caption)

	assert.False(t, c.Select(3))
	idx, _ = c.Current()
	assert.Equal(t, 0, idx)
}

func TestReplaceOverridesManualSelection(t *testing.T) {
	st := state.New(twoOfThree())
	c := New(st)
	c.Select(0)

	next := twoOfThree()
	next.GuessImages[2] = puzzle.Image{Payload: "c", Caption: "third"}
	next.CurrentSelectedGuessIndex = 2
	st.Replace(next)

	idx, img := c.Current()
	assert.Equal(t, 2, idx)
	assert.Equal(t, "third", img.Caption)
}

func TestIndicators(t *testing.T) {
	c := New(state.New(twoOfThree()))

	got := c.Indicators()
	require.Len(t, got, 3)
	assert.Equal(t, Indicator{Index: 0, Caption: "first", Guessed: true}, got[0])
	assert.Equal(t, Indicator{Index: 1, Caption: "second", Guessed: true, Selected: true}, got[1])
	assert.Equal(t, Indicator{Index: 2, Caption: puzzle.ImagePlaceholderCaption}, got[2])
}

func TestFinalComparison(t *testing.T) {
	c := New(state.New(twoOfThree()))
	final, goal, ok := c.FinalComparison()
	require.True(t, ok)
	assert.True(t, final.DisplayPlaceholder)
	assert.Equal(t, "goal", goal.Payload)

	_, _, ok = New(state.New(puzzle.State{})).FinalComparison()
	assert.False(t, ok)
}
