// internal/httpserver/routes_solver.go
//
// HTTP routes for solver sessions.
//   - POST /solver/new      → start a session (scored by hand, by a secret, or by today's secret)
//   - POST /solver/suggest  → the strategy's next guess
//   - POST /solver/guess    → play a guess (scored immediately when the session has a secret)
//   - POST /solver/score    → enter the a/p/c score for the pending guess
//   - POST /absurdle/new    → start a session scored by the adversary
//   - POST /absurdle/suggest → the strategy's next guess against the adversary
//   - POST /absurdle/guess  → play a guess and get the adversary's score
//
// Sessions live in the in-memory store; each move runs under that session's lock.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle-solver/internal/absurdle"
	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var errWrongMode = errors.New("session has another mode")

func (s *Server) mountSolver() {
	s.r.Route("/solver", func(r chi.Router) {
		r.Post("/new", s.handleNew(game.ModeWordle))
		r.Post("/suggest", s.handleSuggest)
		r.Post("/guess", s.handleGuess(""))
		r.Post("/score", s.handleScore)
	})
	s.r.Route("/absurdle", func(r chi.Router) {
		r.Post("/new", s.handleNew(game.ModeAbsurdle))
		r.Post("/suggest", s.handleSuggest)
		r.Post("/guess", s.handleGuess(game.ModeAbsurdle))
	})
}

// newReq is the payload for /solver/new and /absurdle/new. Empty fields
// fall back to the server defaults.
type newReq struct {
	Strategy string `json:"strategy"` // groupsize | groupcount
	Hard     *bool  `json:"hard"`
	Rule     string `json:"rule"`   // consistent | revealed
	Secret   string `json:"secret"` // self-scoring secret (wordle only)
	Daily    bool   `json:"daily"`  // use today's secret (wordle only)
}

// sessionRes is a session snapshot plus whether guesses are scored by the server.
type sessionRes struct {
	game.Snapshot
	AutoScored bool         `json:"autoScored"`
	Score      *score.Score `json:"score,omitempty"` // score of the guess just played
}

func (s *Server) handleNew(mode game.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req newReq
		if r.ContentLength != 0 && !decode(w, r, &req) {
			return
		}

		opts := s.opts.Solver
		if req.Strategy != "" {
			st, err := solver.ParseStrategy(req.Strategy)
			if err != nil {
				writeError(w, http.StatusBadRequest, "bad_strategy")
				return
			}
			opts.Strategy = st
		}
		if req.Hard != nil {
			opts.Hard = *req.Hard
		}
		if req.Rule != "" {
			rule, err := solver.ParseHardRule(req.Rule)
			if err != nil {
				writeError(w, http.StatusBadRequest, "bad_rule")
				return
			}
			opts.Rule = rule
		}

		g := game.New(s.ws, opts)
		g.Mode = mode
		switch {
		case mode == game.ModeAbsurdle:
			g.Feedback = absurdle.Adversary{}
		case req.Secret != "":
			secret, err := words.Parse(req.Secret)
			if err != nil {
				writeErr(w, err)
				return
			}
			if !s.ws.IsSolution(secret) {
				writeError(w, http.StatusBadRequest, "not_a_solution")
				return
			}
			g.Feedback = game.Oracle{Secret: secret}
		case req.Daily:
			g.Feedback = game.Oracle{Secret: daily.Secret(s.ws, time.Now(), s.opts.DailySalt)}
		}

		if err := s.sessions.Save(r.Context(), g); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionRes{Snapshot: g.Snapshot(), AutoScored: g.Feedback != nil})
	}
}

type gameReq struct {
	GameID string `json:"gameId"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req gameReq
	if !decode(w, r, &req) {
		return
	}
	var ch solver.Choice
	err := s.sessions.View(r.Context(), req.GameID, func(g *game.Game) error {
		var err error
		ch, err = g.Suggest(r.Context())
		return err
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

// handleGuess plays a guess. When mode is set the session must have it.
func (s *Server) handleGuess(mode game.Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req guessReq
		if !decode(w, r, &req) {
			return
		}
		guess, err := words.Parse(req.Guess)
		if err != nil {
			writeErr(w, err)
			return
		}

		var res sessionRes
		err = s.sessions.Update(r.Context(), req.GameID, func(g *game.Game) error {
			if mode != "" && g.Mode != mode {
				return errWrongMode
			}
			if err := g.Guess(guess); err != nil {
				return err
			}
			if g.Feedback != nil {
				sc, err := g.AutoScore()
				if err != nil {
					return err
				}
				res.Score = &sc
			}
			res.Snapshot, res.AutoScored = g.Snapshot(), g.Feedback != nil
			return nil
		})
		switch {
		case errors.Is(err, errWrongMode):
			writeError(w, http.StatusConflict, "wrong_mode")
		case err != nil:
			writeErr(w, err)
		default:
			writeJSON(w, http.StatusOK, res)
		}
	}
}

type scoreReq struct {
	GameID string `json:"gameId"`
	Score  string `json:"score"` // five of a/p/c
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if !decode(w, r, &req) {
		return
	}
	var res sessionRes
	err := s.sessions.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.Feedback != nil {
			return errWrongMode
		}
		if err := g.ScoreString(req.Score); err != nil {
			return err
		}
		res.Snapshot = g.Snapshot()
		return nil
	})
	switch {
	case errors.Is(err, errWrongMode):
		writeError(w, http.StatusConflict, "auto_scored")
	case err != nil:
		writeErr(w, err)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}
