// internal/httpserver/routes_puzzle.go
//
// Puzzle routes consumed by the client engine:
//   - GET /puzzle        → current puzzle state (new players start on the day's puzzle)
//   - GET /reset_puzzle  → clear guesses on the current puzzle
//   - GET /next_puzzle   → move to the next puzzle (the last one repeats)
//   - GET /submit_guess  → apply a guess; the final guess sets score and final prompt
//
// Every route takes player_id and answers with a wire snapshot. Images are
// sent as data URLs. The goal prompt stays hidden until the puzzle is finished.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/redoodle/internal/catalog"
	"github.com/robalobadob/redoodle/internal/daily"
	"github.com/robalobadob/redoodle/internal/game"
	"github.com/robalobadob/redoodle/internal/store"
	"github.com/robalobadob/redoodle/internal/wire"
)

const dataURLPrefix = "data:image/png;base64,"

// mountPuzzle registers the puzzle routes.
func (s *Server) mountPuzzle(r chi.Router) {
	r.Get("/puzzle", s.handlePuzzle)
	r.Get("/reset_puzzle", s.handleReset)
	r.Get("/next_puzzle", s.handleNext)
	r.Get("/submit_guess", s.handleSubmitGuess)
}

// playerID extracts the required player_id parameter or writes a 400.
func playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("player_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "player_id_required")
		return "", false
	}
	return id, true
}

// progressFor loads a player's progress, starting new players on today's puzzle.
// Callers hold s.mu.
func (s *Server) progressFor(r *http.Request, id string) (*game.Progress, error) {
	p, err := s.store.Get(r.Context(), id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	num := daily.PuzzleNum(s.opts.Now(), s.opts.DailySalt, s.catalog.Len())
	p = game.New(id, num)
	if err := s.store.Save(r.Context(), p); err != nil {
		return nil, err
	}
	log.Info().Str("player", id).Int("puzzle", num).Msg("new player")
	return p, nil
}

// update runs fn on the player's progress and saves it, then writes the snapshot.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(*game.Progress, catalog.Puzzle) (int, string)) {
	id, ok := playerID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.progressFor(r, id)
	if err != nil {
		log.Error().Err(err).Str("player", id).Msg("load progress")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	pz, ok := s.catalog.Get(p.PuzzleNum)
	if !ok {
		log.Error().Int("puzzle", p.PuzzleNum).Msg("puzzle missing from catalog")
		writeError(w, http.StatusInternalServerError, "puzzle_missing")
		return
	}

	if fn != nil {
		if status, code := fn(p, pz); status != 0 {
			writeError(w, status, code)
			return
		}
		if err := s.store.Save(r.Context(), p); err != nil {
			log.Error().Err(err).Str("player", id).Msg("save progress")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		// Advance may have changed the puzzle.
		if pz, ok = s.catalog.Get(p.PuzzleNum); !ok {
			writeError(w, http.StatusInternalServerError, "puzzle_missing")
			return
		}
	}

	_ = json.NewEncoder(w).Encode(snapshot(p, pz))
}

func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, nil)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(p *game.Progress, _ catalog.Puzzle) (int, string) {
		p.Reset()
		return 0, ""
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(p *game.Progress, _ catalog.Puzzle) (int, string) {
		p.Advance(s.catalog.Next(p.PuzzleNum))
		return 0, ""
	})
}

func (s *Server) handleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	guess := r.URL.Query().Get("guess")
	s.update(w, r, func(p *game.Progress, pz catalog.Puzzle) (int, string) {
		_, err := p.ApplyGuess(guess, pz)
		switch {
		case errors.Is(err, game.ErrFinished):
			return http.StatusConflict, "no_guesses_remaining"
		case errors.Is(err, game.ErrEmptyGuess):
			return http.StatusBadRequest, "guess_required"
		case err != nil:
			return http.StatusBadRequest, "invalid_guess"
		}
		return 0, ""
	})
}

// snapshot renders progress on pz as a wire snapshot.
func snapshot(p *game.Progress, pz catalog.Puzzle) wire.Snapshot {
	start := pz.StartPrompt
	out := wire.Snapshot{
		StartImage:       wire.Image{Base64Image: dataURLPrefix + game.Render(pz.StartPrompt), Prompt: &start},
		GoalImage:        wire.Image{Base64Image: dataURLPrefix + game.Render(pz.GoalPrompt)},
		GuessImages:      make([]*wire.Image, 0, len(p.Guesses)),
		GuessesSubmitted: len(p.Guesses),
		GuessesTotal:     p.Total,
		PuzzleNum:        pz.Num,
	}
	for _, g := range p.Guesses {
		prompt := g.Prompt
		out.GuessImages = append(out.GuessImages, &wire.Image{Base64Image: dataURLPrefix + g.Image, Prompt: &prompt})
	}
	if p.Finished() {
		goal := pz.GoalPrompt
		out.GoalImage.Prompt = &goal
		if p.Score != nil {
			score := *p.Score
			final := p.FinalPrompt
			out.SimilarityScore = &score
			out.FinalPrompt = &final
		}
	}
	return out
}
