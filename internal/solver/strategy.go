package solver

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/score"
)

// Strategy selects how guesses are ranked. The set of strategies is closed;
// every switch over it is exhaustive.
type Strategy uint8

const (
	// GroupSize minimises the largest group of candidates sharing a score:
	// the fewest guesses in the worst case.
	GroupSize Strategy = iota

	// GroupCount maximises the number of distinct scores, a cheap stand-in for
	// information gain that approximates the fewest guesses on average.
	GroupCount
)

func (s Strategy) String() string {
	switch s {
	case GroupSize:
		return "groupsize"
	case GroupCount:
		return "groupcount"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy maps "groupsize" and "groupcount" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "groupsize":
		return GroupSize, nil
	case "groupcount":
		return GroupCount, nil
	}
	return 0, fmt.Errorf("strategies are 'groupcount' and 'groupsize', got %q", s)
}

func (s Strategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Eval describes how a guess partitions a set of candidates.
type Eval struct {
	Count int `json:"count"` // number of distinct scores
	Size  int `json:"size"`  // size of the largest group
}

// Evaluate partitions cands by the score guess would receive against each.
func Evaluate(guess Word, cands []Word) Eval {
	var groups [score.Count]int
	var e Eval
	for _, w := range cands {
		i := score.Compute(guess, w).Index()
		if groups[i] == 0 {
			e.Count++
		}
		groups[i]++
		if groups[i] > e.Size {
			e.Size = groups[i]
		}
	}
	return e
}

// Merge combines the evals of one guess over several candidate sets:
// distinct groups add up, the worst group is the largest of the two.
func (e Eval) Merge(o Eval) Eval {
	return Eval{Count: e.Count + o.Count, Size: max(e.Size, o.Size)}
}

// Metric is the number the strategy ranks on.
func (s Strategy) Metric(e Eval) int {
	switch s {
	case GroupCount:
		return e.Count
	default:
		return e.Size
	}
}

// compare returns a positive number when a ranks above b on the metric alone.
func (s Strategy) compare(a, b Eval) int {
	switch s {
	case GroupCount:
		return a.Count - b.Count
	default:
		return b.Size - a.Size
	}
}

// Choice is a ranked guess.
type Choice struct {
	Guess  Word `json:"guess"`
	Eval   Eval `json:"eval"`
	InPool bool `json:"inPool"` // the guess could itself be the answer
}

// prefer reports whether a ranks above b: better metric, then a guess that
// could win outright, then the alphabetically first word.
func (s Strategy) prefer(a, b Choice) bool {
	if c := s.compare(a.Eval, b.Eval); c != 0 {
		return c > 0
	}
	if a.InPool != b.InPool {
		return a.InPool
	}
	return a.Guess.Less(b.Guess)
}
