package solver

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Pool is the set of solutions still consistent with every score seen so far.
// A Pool is never modified; Filter returns a new one.
type Pool struct {
	ws    *words.WordSet
	set   *bitset.BitSet // indices into ws.Solutions
	words []Word         // the members, in WordSet order
}

// Word is re-exported for brevity inside this package's API.
type Word = words.Word

// NewPool returns the pool holding every solution in ws.
func NewPool(ws *words.WordSet) Pool {
	n := uint(len(ws.Solutions))
	set := bitset.New(n)
	for i := uint(0); i < n; i++ {
		set.Set(i)
	}
	return Pool{ws: ws, set: set, words: ws.Solutions}
}

// Len is the number of candidates left.
func (p Pool) Len() int { return len(p.words) }

// Words returns the candidates. The slice must not be modified.
func (p Pool) Words() []Word { return p.words }

// Contains reports whether w is still a candidate.
func (p Pool) Contains(w Word) bool {
	i, ok := p.ws.SolutionIndex(w)
	return ok && p.set.Test(uint(i))
}

// Filter keeps exactly the candidates that would give observed for guess.
// An empty result means the feedback contradicts the word lists; the error
// wraps ErrContradiction and the receiver is returned unchanged.
func (p Pool) Filter(guess Word, observed score.Score) (Pool, error) {
	next := bitset.New(p.set.Len())
	kept := make([]Word, 0, len(p.words))
	for i, ok := p.set.NextSet(0); ok; i, ok = p.set.NextSet(i + 1) {
		w := p.ws.Solutions[i]
		if score.Compute(guess, w) == observed {
			next.Set(i)
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return p, fmt.Errorf("%w: no candidate scores %s for %s", ErrContradiction, observed, guess)
	}
	return Pool{ws: p.ws, set: next, words: kept}, nil
}

// Partition groups the candidates by the score guess would receive.
// The map has one entry per distinct outcome.
func (p Pool) Partition(guess Word) map[score.Score][]Word {
	out := make(map[score.Score][]Word)
	for _, w := range p.words {
		s := score.Compute(guess, w)
		out[s] = append(out[s], w)
	}
	return out
}
