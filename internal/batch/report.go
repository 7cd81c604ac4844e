package batch

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Report holds the guess counts of a batch run.
type Report struct {
	Modes      []Mode
	Secrets    []words.Word
	MaxGuesses int
	Elapsed    time.Duration

	// Guesses[m][s] is the number of guesses mode m needed for secret s,
	// or 0 if the game was not solved.
	Guesses [][]int
}

// Summary aggregates one mode.
type Summary struct {
	Mode    Mode     `json:"mode"`
	Games   int      `json:"games"`
	Solved  int      `json:"solved"`
	Total   int      `json:"total"` // guesses over solved games
	Worst   int      `json:"worst"`
	Average float64  `json:"average"`
	Buckets []Bucket `json:"histogram"`
}

// Bucket is one histogram bar: how many secrets took exactly Guesses guesses.
type Bucket struct {
	Guesses int `json:"guesses"`
	Words   int `json:"words"`
}

// Record compares the two strategies secret by secret at one hard setting.
type Record struct {
	Hard      bool `json:"hard"`
	CountWins int  `json:"countWins"` // groupcount used fewer guesses
	SizeWins  int  `json:"sizeWins"`  // groupsize used fewer guesses
	Ties      int  `json:"ties"`
}

// Summary returns the aggregate for mode index m.
func (r *Report) Summary(m int) Summary {
	solved := lo.Filter(r.Guesses[m], func(n int, _ int) bool { return n > 0 })
	s := Summary{
		Mode:   r.Modes[m],
		Games:  len(r.Guesses[m]),
		Solved: len(solved),
		Total:  lo.Sum(solved),
		Worst:  lo.Max(solved),
	}
	if s.Solved > 0 {
		s.Average = float64(s.Total) / float64(s.Solved)
	}

	counts := make(map[int]int)
	for _, n := range solved {
		counts[n]++
	}
	keys := lo.Keys(counts)
	slices.Sort(keys)
	s.Buckets = lo.Map(keys, func(k int, _ int) Bucket { return Bucket{Guesses: k, Words: counts[k]} })
	return s
}

// Summaries returns Summary for every mode in order.
func (r *Report) Summaries() []Summary {
	return lo.Times(len(r.Modes), r.Summary)
}

// Records compares groupcount against groupsize for every hard setting where
// both were run.
func (r *Report) Records() []Record {
	var out []Record
	for _, hard := range []bool{false, true} {
		ci := slices.Index(r.Modes, Mode{Strategy: solver.GroupCount, Hard: hard})
		si := slices.Index(r.Modes, Mode{Strategy: solver.GroupSize, Hard: hard})
		if ci < 0 || si < 0 {
			continue
		}
		rec := Record{Hard: hard}
		for i := range r.Secrets {
			c, s := r.Guesses[ci][i], r.Guesses[si][i]
			switch {
			case c == s:
				rec.Ties++
			case s == 0 || (c != 0 && c < s):
				rec.CountWins++
			default:
				rec.SizeWins++
			}
		}
		out = append(out, rec)
	}
	return out
}

// Unsolved returns the secrets mode m failed on.
func (r *Report) Unsolved(m int) []words.Word {
	return lo.Filter(r.Secrets, func(_ words.Word, i int) bool { return r.Guesses[m][i] == 0 })
}

// WriteTable prints the histogram table and the strategy records.
func (r *Report) WriteTable(w io.Writer) error {
	sums := r.Summaries()
	worst := lo.Max(lo.Map(sums, func(s Summary, _ int) int { return s.Worst }))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"guesses"}
	for _, s := range sums {
		header = append(header, s.Mode.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for n := 1; n <= worst; n++ {
		row := []string{fmt.Sprint(n)}
		for _, s := range sums {
			b, _ := lo.Find(s.Buckets, func(b Bucket) bool { return b.Guesses == n })
			row = append(row, fmt.Sprint(b.Words))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	row := []string{"unsolved"}
	for _, s := range sums {
		row = append(row, fmt.Sprint(s.Games-s.Solved))
	}
	fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	row = []string{"average"}
	for _, s := range sums {
		row = append(row, fmt.Sprintf("%.4f", s.Average))
	}
	fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, rec := range r.Records() {
		label := "normal"
		if rec.Hard {
			label = "hard"
		}
		if _, err := fmt.Fprintf(w, "%s: groupcount better %d, groupsize better %d, tied %d\n",
			label, rec.CountWins, rec.SizeWins, rec.Ties); err != nil {
			return err
		}
	}
	return nil
}
