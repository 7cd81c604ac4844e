// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver sessions: POST /solver/new, /solver/suggest, /solver/guess, /solver/score.
//   - Absurdle sessions: POST /absurdle/new, /absurdle/suggest, /absurdle/guess.
//   - Admin token: POST /auth/token. Batch runs under /batch (running one requires auth).
//
// Notes:
//   - Sessions are held in memory only; batch reports go to SQLite when a
//     results store is configured.
//   - Every error body is {"error":"<code>"}.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Options configures a Server.
type Options struct {
	ClientOrigin      string
	JWTSecret         string
	JWTExpires        time.Duration
	AdminPasswordHash string // bcrypt; empty disables POST /auth/token
	Solver            solver.Options
	DailySalt         string
	Timeout           time.Duration // per request, default 10s
}

// Server bundles router, word lists, session store and results store.
type Server struct {
	r        *chi.Mux
	ws       *words.WordSet
	sessions store.Store
	results  *results.Store
	opts     Options

	batchMu  sync.Mutex
	running  bool
	batchWG  sync.WaitGroup
	batchErr error
}

// New constructs a Server, installs middleware, and registers routes.
// res may be nil, in which case the /batch routes answer 503.
func New(ws *words.WordSet, sessions store.Store, res *results.Store, opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.JWTExpires <= 0 {
		opts.JWTExpires = 12 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), ws: ws, sessions: sessions, results: res, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)               // one debug line per request
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))     // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/debug/words",
				"POST /solver/new", "POST /solver/suggest", "POST /solver/guess", "POST /solver/score",
				"POST /absurdle/new", "POST /absurdle/suggest", "POST /absurdle/guess",
				"POST /auth/token", "POST /batch/run", "/batch/runs",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Len()})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		sol, guess := s.ws.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"solutions": sol, "guessable": guess})
	})

	s.mountSolver()
	s.mountAuth()
	s.mountBatch()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Handler exposes the router (useful for tests and custom listeners).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs method, path, status and duration at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- replies -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeErr maps a domain error to a status and error code.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, results.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, words.ErrInvalidWord):
		writeError(w, http.StatusBadRequest, "invalid_word")
	case errors.Is(err, score.ErrMalformedScore):
		writeError(w, http.StatusBadRequest, "malformed_score")
	case errors.Is(err, solver.ErrIllegalGuess):
		writeError(w, http.StatusUnprocessableEntity, "illegal_guess")
	case errors.Is(err, solver.ErrContradiction):
		writeError(w, http.StatusConflict, "contradiction")
	case errors.Is(err, game.ErrOutOfTurn):
		writeError(w, http.StatusConflict, "out_of_turn")
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "finished")
	case errors.Is(err, game.ErrNoFeedback):
		writeError(w, http.StatusConflict, "score_by_hand")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// decode reads a JSON body into v, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}
