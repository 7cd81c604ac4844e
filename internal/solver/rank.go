package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker splits the guess list finer than the worker count so that a
// slow chunk does not leave the other workers idle at the end of a turn.
const chunksPerWorker = 4

// Ranker evaluates guesses on a bounded worker pool.
//
// The guess list is cut into contiguous chunks. Each worker finds the best
// guess of its chunk and stores it in that chunk's slot; after Wait a single
// pass over the slots picks the overall best with the same ordering, so the
// result does not depend on scheduling.
type Ranker struct {
	Workers int // <= 0 means runtime.GOMAXPROCS(0)
}

func (r Ranker) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Best returns the highest-ranked guess for the pool under strategy.
func (r Ranker) Best(ctx context.Context, guesses []Word, pool Pool, strategy Strategy) (Choice, error) {
	cands := pool.Words()
	return r.best(ctx, guesses, strategy, func(w Word) Choice {
		return Choice{Guess: w, Eval: Evaluate(w, cands), InPool: pool.Contains(w)}
	})
}

func (r Ranker) best(ctx context.Context, guesses []Word, strategy Strategy, eval func(Word) Choice) (Choice, error) {
	if len(guesses) == 0 {
		return Choice{}, ErrEmptyGuessSpace
	}

	w := r.workers()
	size := max(1, (len(guesses)+w*chunksPerWorker-1)/(w*chunksPerWorker))
	n := (len(guesses) + size - 1) / size
	slots := make([]Choice, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w)
	for c := 0; c < n; c++ {
		c := c
		start, end := c*size, min((c+1)*size, len(guesses))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			best := eval(guesses[start])
			for _, guess := range guesses[start+1 : end] {
				if ch := eval(guess); strategy.prefer(ch, best) {
					best = ch
				}
			}
			slots[c] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Choice{}, err
	}

	best := slots[0]
	for _, ch := range slots[1:] {
		if strategy.prefer(ch, best) {
			best = ch
		}
	}
	return best, nil
}
