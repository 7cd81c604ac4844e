// Package absurdle implements the adversarial variant of the game: there is
// no fixed secret, and every guess is answered with the score that keeps the
// most candidates alive.
package absurdle

import (
	"errors"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrEmptyPool is returned when the adversary is asked to answer with no
// candidates left.
var ErrEmptyPool = errors.New("absurdle: no candidates to choose from")

// Adversary picks the score for each guess.
//
// The reported score is the one shared by the largest group of candidates.
// Ties go to the score that gives away less: fewer Correct symbols, then
// fewer Present symbols, then the lowest score index (Absent before Present
// before Correct at the first position where the two differ).
type Adversary struct{}

// Respond returns the adversary's score for guess against cands, and the
// size of the group it keeps.
func (Adversary) Respond(guess words.Word, cands []words.Word) (score.Score, int) {
	var groups [score.Count]int
	for _, w := range cands {
		groups[score.Compute(guess, w).Index()]++
	}

	best, size := score.Score{}, -1
	for i, n := range groups {
		if n == 0 {
			continue
		}
		s := score.FromIndex(i)
		if n > size || (n == size && revealsLess(s, best)) {
			best, size = s, n
		}
	}
	return best, max(size, 0)
}

// Score answers guess for a game in progress. It satisfies game.Feedback.
func (a Adversary) Score(guess words.Word, pool solver.Pool) (score.Score, error) {
	if pool.Len() == 0 {
		return score.Score{}, ErrEmptyPool
	}
	s, _ := a.Respond(guess, pool.Words())
	return s, nil
}

// revealsLess orders equally large groups.
func revealsLess(a, b score.Score) bool {
	ac, ap := a.Tally()
	bc, bp := b.Tally()
	if ac != bc {
		return ac < bc
	}
	if ap != bp {
		return ap < bp
	}
	return a.Index() < b.Index()
}
