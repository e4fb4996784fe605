package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/redoodle/internal/catalog"
	"github.com/robalobadob/redoodle/internal/daily"
	"github.com/robalobadob/redoodle/internal/store"
	"github.com/robalobadob/redoodle/internal/wire"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Parse([]string{
		"a red fox | a lighthouse on a cliff",
		"a bowl of ramen | an astronaut in space",
		"a cat in a crown | a castle at sunset",
	})
	require.NoError(t, err)
	return New(store.NewMemoryStore(), cat, Options{Now: func() time.Time { return fixedNow }}), cat
}

func get(t *testing.T, s *Server, path string, q url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path+"?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) wire.Snapshot {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap, err := wire.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	return snap
}

func player(id string) url.Values { return url.Values{"player_id": {id}} }

func guess(id, g string) url.Values { return url.Values{"player_id": {id}, "guess": {g}} }

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestPuzzleRequiresPlayerID(t *testing.T) {
	s, _ := newTestServer(t)
	for _, path := range []string{"/puzzle", "/reset_puzzle", "/next_puzzle", "/submit_guess"} {
		rec := get(t, s, path, url.Values{})
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "player_id_required")
	}
}

func TestNewPlayerStartsOnDailyPuzzle(t *testing.T) {
	s, cat := newTestServer(t)
	snap := decode(t, get(t, s, "/puzzle", player("p1")))

	assert.Equal(t, daily.PuzzleNum(fixedNow, "local_dev_salt", cat.Len()), snap.PuzzleNum)
	assert.Empty(t, snap.GuessImages)
	assert.Equal(t, 3, snap.GuessesTotal)
	assert.True(t, strings.HasPrefix(snap.StartImage.Base64Image, dataURLPrefix))
	assert.NotEmpty(t, snap.StartImage.PromptText())
	assert.Nil(t, snap.GoalImage.Prompt, "goal prompt hidden until finished")
}

func TestSubmitGuessesToCompletion(t *testing.T) {
	s, _ := newTestServer(t)

	var snap wire.Snapshot
	for i, g := range []string{"a fox", "a tower", "a lighthouse"} {
		snap = decode(t, get(t, s, "/submit_guess", guess("p1", g)))
		require.Len(t, snap.GuessImages, i+1)
		assert.Equal(t, g, snap.GuessImages[i].PromptText())
		assert.Equal(t, i+1, snap.GuessesSubmitted)
	}

	require.NotNil(t, snap.SimilarityScore)
	require.NotNil(t, snap.FinalPrompt)
	assert.Equal(t, "a lighthouse", *snap.FinalPrompt)
	assert.NotNil(t, snap.GoalImage.Prompt)

	rec := get(t, s, "/submit_guess", guess("p1", "one more"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = get(t, s, "/submit_guess", guess("p2", "   "))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetAndNext(t *testing.T) {
	s, cat := newTestServer(t)
	first := decode(t, get(t, s, "/puzzle", player("p1")))
	decode(t, get(t, s, "/submit_guess", guess("p1", "cat")))

	reset := decode(t, get(t, s, "/reset_puzzle", player("p1")))
	assert.Empty(t, reset.GuessImages)
	assert.Equal(t, first.PuzzleNum, reset.PuzzleNum)

	next := decode(t, get(t, s, "/next_puzzle", player("p1")))
	assert.Equal(t, cat.Next(first.PuzzleNum), next.PuzzleNum)
	assert.Empty(t, next.GuessImages)

	again := decode(t, get(t, s, "/puzzle", player("p1")))
	assert.Equal(t, next.PuzzleNum, again.PuzzleNum)
}

func TestPlayersAreIsolated(t *testing.T) {
	s, _ := newTestServer(t)
	decode(t, get(t, s, "/submit_guess", guess("p1", "cat")))

	other := decode(t, get(t, s, "/puzzle", player("p2")))
	assert.Empty(t, other.GuessImages)
}

func TestNotFoundIsJSON(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/puzzle", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
