package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/redoodle/internal/game"
)

func TestMemorySaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	p := game.New("p1", 2)
	p.Guesses = append(p.Guesses, game.Guess{Prompt: "cat", Image: "x"})
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Stored progress is isolated from later mutation of either copy.
	got.Guesses[0].Prompt = "dog"
	p.Guesses = append(p.Guesses, game.Guess{Prompt: "more"})
	again, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, again.Guesses, 1)
	assert.Equal(t, "cat", again.Guesses[0].Prompt)
}
