// internal/httpserver/routes_batch.go
//
// HTTP routes for batch runs (solve every secret, report guess counts).
//   - POST /batch/run       → start a run (admin only); "wait": true runs it inline
//   - GET  /batch/runs      → most recent stored runs
//   - GET  /batch/runs/{id} → one run with its per-mode summaries and strategy records
//
// Only one run executes at a time. Finished reports are stored in SQLite.

package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/batch"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func (s *Server) mountBatch() {
	s.r.Route("/batch", func(r chi.Router) {
		r.Use(s.requireResults)
		r.With(s.requireAuth()).Post("/run", s.handleBatchRun)
		r.Get("/runs", s.handleBatchList)
		r.Get("/runs/{id}", s.handleBatchGet)
	})
}

// requireResults answers 503 when no results store is configured.
func (s *Server) requireResults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.results == nil {
			writeError(w, http.StatusServiceUnavailable, "results_disabled")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type batchReq struct {
	Modes      []string `json:"modes"`   // e.g. "groupsize", "groupcount+hard"; empty means all four
	Secrets    []string `json:"secrets"` // empty means every solution
	MaxGuesses int      `json:"maxGuesses"`
	Note       string   `json:"note"`
	Wait       bool     `json:"wait"`
}

// runRes describes a stored run.
type runRes struct {
	Run       results.Run             `json:"run"`
	Summaries []batch.Summary         `json:"summaries"`
	Records   []batch.Record          `json:"records"`
	Unsolved  map[string][]words.Word `json:"unsolved,omitempty"`
}

func (s *Server) handleBatchRun(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if !decode(w, r, &req) {
		return
	}
	cfg := batch.Config{
		Rule:       s.opts.Solver.Rule,
		MaxGuesses: req.MaxGuesses,
		Workers:    s.opts.Solver.Workers,
	}
	for _, m := range req.Modes {
		mode, err := batch.ParseMode(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_mode")
			return
		}
		cfg.Modes = append(cfg.Modes, mode)
	}
	for _, raw := range req.Secrets {
		secret, err := words.Parse(raw)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !s.ws.IsSolution(secret) {
			writeError(w, http.StatusBadRequest, "not_a_solution")
			return
		}
		cfg.Secrets = append(cfg.Secrets, secret)
	}

	s.batchMu.Lock()
	if s.running {
		s.batchMu.Unlock()
		writeError(w, http.StatusConflict, "batch_running")
		return
	}
	s.running = true
	s.batchErr = nil
	s.batchWG.Add(1)
	s.batchMu.Unlock()

	sub, _ := r.Context().Value(ctxSubjectKey{}).(string)
	log.Info().Str("by", sub).Int("modes", len(cfg.Modes)).Int("secrets", len(cfg.Secrets)).Msg("batch run requested")

	if !req.Wait {
		go s.runBatch(context.WithoutCancel(r.Context()), cfg, req.Note)
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
		return
	}

	id, err := s.runBatch(r.Context(), cfg, req.Note)
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := s.loadRun(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// runBatch runs and stores one batch. The caller has set s.running.
func (s *Server) runBatch(ctx context.Context, cfg batch.Config, note string) (id int64, err error) {
	defer func() {
		s.batchMu.Lock()
		s.running = false
		s.batchErr = err
		s.batchMu.Unlock()
		s.batchWG.Done()
	}()

	rep, err := batch.Run(ctx, s.ws, cfg)
	if err != nil {
		log.Error().Err(err).Msg("batch run failed")
		return 0, err
	}
	if id, err = s.results.Save(ctx, rep, note); err != nil {
		log.Error().Err(err).Msg("save batch run")
		return 0, err
	}
	log.Info().Int64("run", id).Dur("elapsed", rep.Elapsed).Msg("batch run stored")
	return id, nil
}

// WaitBatch blocks until no batch run is in progress and returns the last
// run's error.
func (s *Server) WaitBatch() error {
	s.batchWG.Wait()
	s.batchMu.Lock()
	defer s.batchMu.Unlock()
	return s.batchErr
}

func (s *Server) handleBatchList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.results.List(r.Context(), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleBatchGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}
	res, err := s.loadRun(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) loadRun(ctx context.Context, id int64) (runRes, error) {
	run, rep, err := s.results.Get(ctx, id)
	if err != nil {
		return runRes{}, err
	}
	res := runRes{Run: run, Summaries: rep.Summaries(), Records: rep.Records()}
	for i, m := range rep.Modes {
		if u := rep.Unsolved(i); len(u) > 0 {
			if res.Unsolved == nil {
				res.Unsolved = make(map[string][]words.Word)
			}
			res.Unsolved[m.String()] = u
		}
	}
	return res, nil
}
