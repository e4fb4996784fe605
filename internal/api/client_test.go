package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/redoodle/internal/catalog"
	"github.com/robalobadob/redoodle/internal/httpserver"
	"github.com/robalobadob/redoodle/internal/store"
	"github.com/robalobadob/redoodle/internal/wire"
)

func devAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	srv := httpserver.New(store.NewMemoryStore(), cat, httpserver.Options{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("localhost:8000", nil)
	assert.Error(t, err)
	_, err = New("://", nil)
	assert.Error(t, err)
}

func TestRoundTripAgainstDevAPI(t *testing.T) {
	ts := devAPI(t)
	c, err := New(ts.URL+"/", ts.Client())
	require.NoError(t, err)
	ctx := context.Background()

	snap, err := c.FetchPuzzle(ctx, "player-1")
	require.NoError(t, err)
	assert.Empty(t, snap.GuessImages)
	start := snap.PuzzleNum

	snap, err = c.SubmitGuess(ctx, "player-1", "a cat & a dog?")
	require.NoError(t, err)
	require.Len(t, snap.GuessImages, 1)
	assert.Equal(t, "a cat & a dog?", snap.GuessImages[0].PromptText())

	snap, err = c.ResetPuzzle(ctx, "player-1")
	require.NoError(t, err)
	assert.Empty(t, snap.GuessImages)
	assert.Equal(t, start, snap.PuzzleNum)

	_, err = c.NextPuzzle(ctx, "player-1")
	require.NoError(t, err)
}

func TestStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)
	_, err = c.FetchPuzzle(context.Background(), "p")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "/puzzle", se.Op)
	assert.Contains(t, se.Body, "load_failed")
}

func TestInvalidBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"puzzle_num": 1}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, nil)
	require.NoError(t, err)
	_, err = c.FetchPuzzle(context.Background(), "p")
	assert.ErrorIs(t, err, wire.ErrInvalidSnapshot)
}

func TestRequestShape(t *testing.T) {
	var gotPath, gotPlayer, gotGuess string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPlayer = r.URL.Query().Get("player_id")
		gotGuess = r.URL.Query().Get("guess")
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/api", nil)
	require.NoError(t, err)
	_, _ = c.SubmitGuess(context.Background(), "p 1", "red fox")

	assert.Equal(t, "/api/submit_guess", gotPath)
	assert.Equal(t, "p 1", gotPlayer)
	assert.Equal(t, "red fox", gotGuess)
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer ts.Close()
	defer close(block)

	c, err := New(ts.URL, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.FetchPuzzle(ctx, "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
