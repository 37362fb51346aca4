// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Clue scoring: POST /check.
//   - Solver sessions: POST /sessions, then token-gated /sessions/{id}/*.
//   - Daily solve: GET /daily (routes_daily.go).
//   - Benchmark history: GET /stats/runs (when a results store is configured).
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled.
//   - Session routes require the bearer token returned by POST /sessions
//     (see session.go); a token only unlocks its own session.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/results"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options carries the server's configuration.
type Options struct {
	JWTSecret    string
	SessionTTL   time.Duration
	DailySalt    string
	ClientOrigin string
	StartWord    string // default opening guess for new sessions
	Workers      int    // search goroutines per solver
}

// Server bundles router, lexicon, session store and optional results store.
type Server struct {
	r        *chi.Mux
	lex      *words.Lexicon
	sessions store.Store
	results  *results.Store
	opts     Options
}

// New constructs a Server, installs middleware, and registers routes.
// res may be nil, in which case /stats/runs reports 404.
func New(lex *words.Lexicon, sessions store.Store, res *results.Store, opts Options) *Server {
	if opts.StartWord == "" {
		opts.StartWord = solver.DefaultStartWord
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), lex: lex, sessions: sessions, results: res, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /check","POST /sessions","/sessions/{id}/*","/daily","/stats/runs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, p, alt := lex.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "probes": p, "altProbes": alt})
	})

	s.r.Post("/check", s.handleCheck)
	s.mountSessions()
	s.mountDaily(s.r)
	s.r.Get("/stats/runs", s.handleRuns)

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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ CHECK --------------------------------------

// checkReq/Res payloads for POST /check.
type checkReq struct {
	Secret string `json:"secret"`
	Guess  string `json:"guess"`
}
type checkRes struct {
	Clues   clue.Vector `json:"clues"`
	Pattern string      `json:"pattern"`
	Solved  bool        `json:"solved"`
}

// handleCheck scores a guess against a secret. Both must be probe words.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	secret, err := s.lex.Lookup(req.Secret, false, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "secret: "+err.Error())
		return
	}
	guess, err := s.lex.Lookup(req.Guess, false, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "guess: "+err.Error())
		return
	}
	v := clue.Check(secret, guess)
	writeJSON(w, http.StatusOK, checkRes{Clues: v, Pattern: v.Pattern(), Solved: v.Solved()})
}

// ------------------------------ STATS --------------------------------------

// handleRuns lists recent benchmark runs, ?limit=N (default 20, at most 100).
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeError(w, http.StatusNotFound, "results store not configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.results.RecentRuns(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// ------------------------------- small util --------------------------------

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// isValidation reports whether err is a user-input validation error.
func isValidation(err error) bool {
	return errors.Is(err, words.ErrLength) ||
		errors.Is(err, words.ErrNotLetters) ||
		errors.Is(err, words.ErrUnknownWord) ||
		errors.Is(err, clue.ErrPattern)
}
