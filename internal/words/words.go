// internal/words/words.go
//
// WordSet: the two word lists the engine works from.
//
// Word Lists:
//   - Solutions: words that may be the secret.
//   - Guessable: words that may be entered as guesses (always includes Solutions).
//
// Both lists are sorted and deduplicated when the set is built and are never
// modified afterwards; callers share a single *WordSet for the lifetime of the
// process and only ever read from it.

package words

import (
	"errors"
	"slices"

	"github.com/samber/lo"
)

// ErrEmptyList is returned when a WordSet would have no solutions.
var ErrEmptyList = errors.New("words: solutions list is empty")

// WordSet holds the solution and guess lists.
type WordSet struct {
	Solutions []Word // sorted, unique
	Guessable []Word // sorted, unique, superset of Solutions

	solutionIdx map[Word]int      // index into Solutions
	guessable   map[Word]struct{} // Guessable as a set
}

// NewSet builds a WordSet. Solutions are merged into the guessable list, so
// the solutions ⊆ guessable invariant always holds for the result.
func NewSet(solutions, guessable []Word) (*WordSet, error) {
	sol := sortUnique(solutions)
	if len(sol) == 0 {
		return nil, ErrEmptyList
	}
	all := sortUnique(append(slices.Clone(guessable), sol...))

	ws := &WordSet{
		Solutions:   sol,
		Guessable:   all,
		solutionIdx: make(map[Word]int, len(sol)),
		guessable:   make(map[Word]struct{}, len(all)),
	}
	for i, w := range sol {
		ws.solutionIdx[w] = i
	}
	for _, w := range all {
		ws.guessable[w] = struct{}{}
	}
	return ws, nil
}

// FromStrings parses both lists and builds a WordSet.
func FromStrings(solutions, guessable []string) (*WordSet, error) {
	sol, err := parseAll(solutions)
	if err != nil {
		return nil, err
	}
	gs, err := parseAll(guessable)
	if err != nil {
		return nil, err
	}
	return NewSet(sol, gs)
}

// MustSet is FromStrings for fixed lists in tests and examples.
func MustSet(solutions, guessable []string) *WordSet {
	ws, err := FromStrings(solutions, guessable)
	if err != nil {
		panic(err)
	}
	return ws
}

// IsGuessable reports whether w may be entered as a guess.
func (s *WordSet) IsGuessable(w Word) bool {
	_, ok := s.guessable[w]
	return ok
}

// IsSolution reports whether w may be the secret.
func (s *WordSet) IsSolution(w Word) bool {
	_, ok := s.solutionIdx[w]
	return ok
}

// SolutionIndex returns the position of w in Solutions.
func (s *WordSet) SolutionIndex(w Word) (int, bool) {
	i, ok := s.solutionIdx[w]
	return i, ok
}

// Stats returns counts of loaded words: (solutions, guessable).
func (s *WordSet) Stats() (solutions int, guessable int) {
	return len(s.Solutions), len(s.Guessable)
}

func sortUnique(ws []Word) []Word {
	out := lo.Uniq(ws)
	slices.SortFunc(out, Word.Compare)
	return out
}

func parseAll(ss []string) ([]Word, error) {
	out := make([]Word, 0, len(ss))
	for _, s := range ss {
		w, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}
