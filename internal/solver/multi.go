package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrAllSolved is returned by Multi.NextGuess once every board is won.
var ErrAllSolved = errors.New("all boards solved")

// Multi plays several boards at once with shared guesses, as in Quordle or
// Duotrigordle. Each board keeps its own pool; a guess is ranked by merging
// its evals over every unsolved board.
type Multi struct {
	ws       *words.WordSet
	strategy Strategy
	ranker   Ranker
	boards   []*Solver
	done     []bool
}

// NewMulti returns n independent boards. Hard mode does not apply.
func NewMulti(ws *words.WordSet, n int, opts Options) *Multi {
	opts.Hard = false
	m := &Multi{
		ws:       ws,
		strategy: opts.Strategy,
		ranker:   Ranker{Workers: opts.Workers},
		boards:   make([]*Solver, n),
		done:     make([]bool, n),
	}
	for i := range m.boards {
		m.boards[i] = New(ws, opts)
	}
	return m
}

// Len is the number of boards.
func (m *Multi) Len() int { return len(m.boards) }

// Board returns board i.
func (m *Multi) Board(i int) *Solver { return m.boards[i] }

// Done reports whether board i has been won.
func (m *Multi) Done(i int) bool { return m.done[i] }

// AllDone reports whether every board has been won.
func (m *Multi) AllDone() bool {
	for _, d := range m.done {
		if !d {
			return false
		}
	}
	return true
}

// NextGuess returns the guess for the next round. A board down to one
// candidate is finished off first.
func (m *Multi) NextGuess(ctx context.Context) (Choice, error) {
	var active []Pool
	for i, b := range m.boards {
		if m.done[i] {
			continue
		}
		if b.pool.Len() == 1 {
			return Choice{Guess: b.pool.Words()[0], Eval: Eval{Count: 1, Size: 1}, InPool: true}, nil
		}
		active = append(active, b.pool)
	}
	if len(active) == 0 {
		return Choice{}, ErrAllSolved
	}

	return m.ranker.best(ctx, m.ws.Guessable, m.strategy, func(w Word) Choice {
		ch := Choice{Guess: w}
		for i, p := range active {
			e := Evaluate(w, p.Words())
			if i == 0 {
				ch.Eval = e
			} else {
				ch.Eval = ch.Eval.Merge(e)
			}
			ch.InPool = ch.InPool || p.Contains(w)
		}
		return ch
	})
}

// Respond records the score board i gave for guess.
func (m *Multi) Respond(i int, guess Word, sc score.Score) error {
	if i < 0 || i >= len(m.boards) {
		return fmt.Errorf("board %d out of range", i)
	}
	if m.done[i] {
		return fmt.Errorf("board %d already solved", i)
	}
	if err := m.boards[i].Respond(guess, sc); err != nil {
		return fmt.Errorf("board %d: %w", i, err)
	}
	if sc.IsWin() {
		m.done[i] = true
	}
	return nil
}
