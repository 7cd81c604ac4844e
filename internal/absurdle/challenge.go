package absurdle

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultMaxDepth is the depth bound the command line uses unless told otherwise.
const DefaultMaxDepth = 10

// ErrNoPath means every guess sequence up to the depth limit lets the
// adversary eliminate the target.
var ErrNoPath = errors.New("absurdle: no guess sequence reaches the target")

// Challenge searches for a sequence of guesses that forces the adversary to
// leave Target as the only candidate.
//
// At every step the candidate guesses are those whose adversarial answer keeps
// Target alive, and among them the ones whose answer eliminates the most
// words. The search goes depth first over these, trying the alphabetically
// first guess of each level, and backtracks when a level runs dry.
type Challenge struct {
	Words    *words.WordSet
	Target   words.Word
	Hard     bool
	Rule     solver.HardRule
	MaxDepth int // most guesses before Target, <= 0 for no limit
	Workers  int // <= 0 means GOMAXPROCS
}

type state struct {
	pool    solver.Pool
	history solver.History
}

// Solve returns the guesses that win the challenge. The last one is Target.
func (c *Challenge) Solve(ctx context.Context) ([]words.Word, error) {
	if !c.Words.IsSolution(c.Target) {
		return nil, fmt.Errorf("absurdle: target %s is not a possible solution", c.Target)
	}
	// Each level holds the untried guesses for that step, best last.
	var stack [][]words.Word
	st := c.replay(nil)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// A pool down to Target is finished by guessing it, which the depth
		// bound does not count.
		var next []words.Word
		if st.pool.Len() == 1 || c.MaxDepth <= 0 || len(stack) < c.MaxDepth {
			var err error
			if next, err = c.candidates(ctx, st); err != nil {
				return nil, err
			}
		}

		switch {
		case len(next) == 1 && next[0] == c.Target:
			path := append(c.path(stack), c.Target)
			log.Debug().Int("guesses", len(path)).Str("target", c.Target.String()).Msg("challenge solved")
			return path, nil

		case len(next) == 0:
			if len(stack) == 0 {
				return nil, ErrNoPath
			}
			log.Debug().Strs("path", wordStrings(c.path(stack))).Msg("dead end")
			stack[len(stack)-1] = stack[len(stack)-1][:len(stack[len(stack)-1])-1]
			for len(stack[len(stack)-1]) == 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return nil, ErrNoPath
				}
				top := stack[len(stack)-1]
				stack[len(stack)-1] = top[:len(top)-1]
			}

		default:
			stack = append(stack, next)
		}

		st = c.replay(c.path(stack))
	}
}

// path is the current guess of every level.
func (c *Challenge) path(stack [][]words.Word) []words.Word {
	out := make([]words.Word, len(stack))
	for i, level := range stack {
		out[i] = level[len(level)-1]
	}
	return out
}

// replay rebuilds the pool and history for a guess sequence. Every guess on
// the stack was chosen so that the adversary's answer equals its score
// against Target, so scoring against Target reproduces the game.
func (c *Challenge) replay(guesses []words.Word) state {
	st := state{pool: solver.NewPool(c.Words)}
	for _, g := range guesses {
		sc := score.Compute(g, c.Target)
		next, err := st.pool.Filter(g, sc)
		if err != nil {
			// unreachable: Target itself always survives
			panic(err)
		}
		st.pool = next
		st.history = append(st.history, solver.Turn{Guess: g, Score: sc})
	}
	return st
}

// candidates returns the next-step guesses, best last. A pool holding only
// Target yields Target itself.
func (c *Challenge) candidates(ctx context.Context, st state) ([]words.Word, error) {
	if st.pool.Len() == 1 {
		return st.pool.Words(), nil
	}

	guesses := c.Words.Guessable
	cands := st.pool.Words()
	eliminated := make([]int, len(guesses))

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := max(1, (len(guesses)+workers-1)/workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(guesses); start += size {
		start := start
		end := min(start+size, len(guesses))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				eliminated[i] = c.eliminates(guesses[i], st, cands)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for _, n := range eliminated {
		best = max(best, n)
	}
	if best == 0 {
		return nil, nil
	}
	var out []words.Word
	for i, n := range eliminated {
		if n == best {
			out = append(out, guesses[i])
		}
	}
	// Guessable is sorted, so reversing puts the alphabetically first guess last.
	slices.Reverse(out)
	return out, nil
}

// eliminates returns how many candidates the adversary's answer to guess
// removes, or -1 if guess is not allowed or the answer would drop Target.
func (c *Challenge) eliminates(guess words.Word, st state, cands []words.Word) int {
	if guess == c.Target {
		return -1
	}
	if c.Hard && !st.history.Legal(guess, c.Rule) {
		return -1
	}
	sc, kept := Adversary{}.Respond(guess, cands)
	if score.Compute(guess, c.Target) != sc {
		return -1
	}
	return len(cands) - kept
}

func wordStrings(ws []words.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
