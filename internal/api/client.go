// internal/api/client.go
//
// HTTP client for the remote puzzle API.
// Exposes the four operations the client engine consumes:
//   - GET /puzzle        → current puzzle state for a player
//   - GET /reset_puzzle  → reset the player's current puzzle
//   - GET /next_puzzle   → advance the player to the next puzzle
//   - GET /submit_guess  → submit a prompt for the current puzzle
//
// Every call takes the player ID as the player_id query parameter and returns
// a schema-validated wire snapshot. No retries and no client-side timeout:
// cancellation is left to the caller's context.

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/redoodle/internal/wire"
)

// maxBodyBytes bounds response bodies; snapshots carry inline images.
const maxBodyBytes = 32 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Body)
}

// Client talks to the puzzle API at a base URL.
type Client struct {
	base *url.URL
	hc   *http.Client
}

// New builds a Client for baseURL. A nil hc uses a fresh http.Client without
// a timeout.
func New(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{base: u, hc: hc}, nil
}

// FetchPuzzle loads the player's current puzzle.
func (c *Client) FetchPuzzle(ctx context.Context, playerID string) (wire.Snapshot, error) {
	return c.get(ctx, "/puzzle", url.Values{"player_id": {playerID}})
}

// ResetPuzzle clears the player's guesses on the current puzzle.
func (c *Client) ResetPuzzle(ctx context.Context, playerID string) (wire.Snapshot, error) {
	return c.get(ctx, "/reset_puzzle", url.Values{"player_id": {playerID}})
}

// NextPuzzle moves the player to the next puzzle.
func (c *Client) NextPuzzle(ctx context.Context, playerID string) (wire.Snapshot, error) {
	return c.get(ctx, "/next_puzzle", url.Values{"player_id": {playerID}})
}

// SubmitGuess submits a prompt for the player's current puzzle.
func (c *Client) SubmitGuess(ctx context.Context, playerID, guess string) (wire.Snapshot, error) {
	return c.get(ctx, "/submit_guess", url.Values{"player_id": {playerID}, "guess": {guess}})
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (wire.Snapshot, error) {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return wire.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return wire.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return wire.Snapshot{}, fmt.Errorf("%s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wire.Snapshot{}, &StatusError{Op: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	snap, err := wire.Decode(body)
	if err != nil {
		return wire.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("op", path).Int("puzzle", snap.PuzzleNum).Int("guesses", len(snap.GuessImages)).Msg("api response")
	return snap, nil
}
