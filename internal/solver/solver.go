// Package solver is the guess-selection engine: the candidate pool, the
// hard-mode legality filter and the two ranking strategies.
//
// A Solver is used by one game at a time. The WordSet it reads from is shared
// and never written.
package solver

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// verboseLimit is the pool size at or below which the remaining words are logged.
const verboseLimit = 10

// Options configures a Solver.
type Options struct {
	Strategy Strategy
	Hard     bool     // restrict guesses with Rule
	Rule     HardRule // only read when Hard is set
	Workers  int      // ranking workers, <= 0 for GOMAXPROCS
}

// Solver tracks one game's candidates and history and suggests guesses.
type Solver struct {
	ws      *words.WordSet
	opts    Options
	ranker  Ranker
	pool    Pool
	history History
}

// New returns a solver whose pool holds every solution.
func New(ws *words.WordSet, opts Options) *Solver {
	return &Solver{
		ws:     ws,
		opts:   opts,
		ranker: Ranker{Workers: opts.Workers},
		pool:   NewPool(ws),
	}
}

func (s *Solver) Options() Options { return s.opts }

// Pool returns the current candidates.
func (s *Solver) Pool() Pool { return s.pool }

// History returns the turns played so far. It must not be modified.
func (s *Solver) History() History { return s.history }

// Words returns the shared word lists.
func (s *Solver) Words() *words.WordSet { return s.ws }

// CheckGuess returns an error wrapping ErrIllegalGuess if guess may not be
// played now.
func (s *Solver) CheckGuess(guess Word) error {
	if !s.ws.IsGuessable(guess) {
		return fmt.Errorf("%w: %s is not in the word list", ErrIllegalGuess, guess)
	}
	if s.opts.Hard && !s.history.Legal(guess, s.opts.Rule) {
		return fmt.Errorf("%w: %s does not use every revealed hint", ErrIllegalGuess, guess)
	}
	return nil
}

// LegalGuesses returns the words that may be guessed this turn.
func (s *Solver) LegalGuesses() []Word {
	if !s.opts.Hard || len(s.history) == 0 {
		return s.ws.Guessable
	}
	out := make([]Word, 0, len(s.ws.Guessable))
	for _, w := range s.ws.Guessable {
		if s.history.Legal(w, s.opts.Rule) {
			out = append(out, w)
		}
	}
	return out
}

// Evaluate scores one guess against the current pool.
func (s *Solver) Evaluate(guess Word) Choice {
	return Choice{Guess: guess, Eval: Evaluate(guess, s.pool.Words()), InPool: s.pool.Contains(guess)}
}

// NextGuess returns the best guess for the current pool. With a single
// candidate left that candidate is returned without ranking.
func (s *Solver) NextGuess(ctx context.Context) (Choice, error) {
	if s.pool.Len() == 1 {
		w := s.pool.Words()[0]
		return Choice{Guess: w, Eval: Eval{Count: 1, Size: 1}, InPool: true}, nil
	}

	legal := s.LegalGuesses()
	if len(legal) == 0 {
		return Choice{}, fmt.Errorf("%w: %d candidates left", ErrEmptyGuessSpace, s.pool.Len())
	}
	ch, err := s.ranker.Best(ctx, legal, s.pool, s.opts.Strategy)
	if err != nil {
		return Choice{}, err
	}
	ev := log.Debug().
		Str("guess", ch.Guess.String()).
		Str("strategy", s.opts.Strategy.String()).
		Int("groups", ch.Eval.Count).
		Int("largest", ch.Eval.Size).
		Int("legal", len(legal))
	if !ch.InPool {
		ev.Msg("guessing a word that is not a possible solution")
	} else {
		ev.Msg("next guess")
	}
	return ch, nil
}

// Respond records the score for guess and narrows the pool. The guess does
// not have to be one NextGuess returned. On error the solver is unchanged.
func (s *Solver) Respond(guess Word, sc score.Score) error {
	next, err := s.pool.Filter(guess, sc)
	if err != nil {
		return err
	}
	s.pool = next
	s.history = append(s.history, Turn{Guess: guess, Score: sc})

	if next.Len() <= verboseLimit {
		names := make([]string, next.Len())
		for i, w := range next.Words() {
			names[i] = w.String()
		}
		log.Debug().Str("left", strings.Join(names, ", ")).Msg("possibilities left")
	} else {
		log.Debug().Int("left", next.Len()).Msg("possibilities left")
	}
	return nil
}
