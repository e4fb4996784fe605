// internal/httpserver/server.go
//
// HTTP server wiring for the dev puzzle API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints: mounted by routes_puzzle.go.
//
// Notes:
//   - Players are identified only by the player_id query parameter; there is
//     no authentication.
//   - CORS allows a single configured origin so a browser front end served
//     from another port can call the API.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/redoodle/internal/catalog"
	"github.com/robalobadob/redoodle/internal/store"
)

// Options tunes a Server. Zero values pick defaults.
type Options struct {
	DailySalt    string           // salt for the puzzle-of-the-day pick
	ClientOrigin string           // allowed CORS origin
	Now          func() time.Time // clock, for tests
}

// Server bundles router, progress store and puzzle catalog.
type Server struct {
	r       *chi.Mux
	store   store.Store
	catalog *catalog.Catalog
	opts    Options

	mu sync.Mutex // serializes read-modify-write of player progress
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cat *catalog.Catalog, opts Options) *Server {
	if opts.DailySalt == "" {
		opts.DailySalt = "local_dev_salt"
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, catalog: cat, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"redoodle-dev","endpoints":["/health","/puzzle","/reset_puzzle","/next_puzzle","/submit_guess"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountPuzzle(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows GET requests from the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + code + `"}`))
}
