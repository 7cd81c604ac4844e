// internal/score/score.go
//
// Feedback scoring for a guess against a secret word.
// Defines:
//   - Symbol: per-letter feedback (absent/present/correct).
//   - Score:  the five symbols for one guess.
//   - Compute: the Wordle two-pass scoring algorithm.
//   - Parse / String: the a/c/p text encoding used at the driver boundary.
//
// A Score packs into a base-3 index (position 0 most significant), so the
// 3^5 = 243 possible outcomes can be counted in a fixed-size array.

package score

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// Symbol is the feedback for a single letter position.
type Symbol uint8

const (
	Absent  Symbol = iota // letter unused, or all its occurrences already accounted for
	Present               // letter in the secret at another position
	Correct               // letter in the secret at this position
)

// Count is the number of distinct Score values.
const Count = 243

// Score is the feedback for one guess.
type Score [words.Length]Symbol

// ErrMalformedScore is returned by Parse for input of the wrong length or
// with characters outside {a, c, p}.
var ErrMalformedScore = errors.New("malformed score")

// Win is the all-Correct score.
var Win = Score{Correct, Correct, Correct, Correct, Correct}

var letters = [3]byte{'a', 'p', 'c'}

func (s Symbol) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("Symbol(%d)", uint8(s))
}

// MarshalText encodes a symbol by name in JSON responses.
func (s Symbol) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Compute scores guess against secret.
//
// Pass 1:
//   - Mark exact matches Correct and consume that letter from the secret's counts.
//
// Pass 2:
//   - For each remaining position: if the letter still has an unconsumed
//     occurrence in the secret, mark it Present and consume it; else Absent.
//
// Resolving every exact match before any Present is what keeps repeated
// letters right: "sassy" against "class" gives one Present s, not two.
func Compute(guess, secret words.Word) Score {
	var res Score
	var avail [26]uint8
	for _, c := range secret {
		avail[c-'a']++
	}

	for i := 0; i < words.Length; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
			avail[guess[i]-'a']--
		}
	}

	for i := 0; i < words.Length; i++ {
		if res[i] == Correct {
			continue
		}
		j := guess[i] - 'a'
		if avail[j] > 0 {
			res[i] = Present
			avail[j]--
		}
	}
	return res
}

// Index packs s into 0..Count-1.
func (s Score) Index() int {
	n := 0
	for _, sym := range s {
		n = n*3 + int(sym)
	}
	return n
}

// FromIndex is the inverse of Index.
func FromIndex(n int) Score {
	var s Score
	for i := words.Length - 1; i >= 0; i-- {
		s[i] = Symbol(n % 3)
		n /= 3
	}
	return s
}

// IsWin reports whether every position is Correct.
func (s Score) IsWin() bool { return s == Win }

// Tally returns the number of Correct and Present symbols.
func (s Score) Tally() (correct, present int) {
	for _, sym := range s {
		switch sym {
		case Correct:
			correct++
		case Present:
			present++
		}
	}
	return correct, present
}

// String encodes s as a/p/c letters, e.g. "ppaaa".
func (s Score) String() string {
	var b [words.Length]byte
	for i, sym := range s {
		b[i] = letters[sym]
	}
	return string(b[:])
}

// Parse decodes the a/c/p encoding.
func Parse(str string) (Score, error) {
	var s Score
	if len(str) != words.Length {
		return s, fmt.Errorf("%w: %q: must be %d characters, all either 'a' (absent), 'c' (correct), or 'p' (present)",
			ErrMalformedScore, str, words.Length)
	}
	for i := 0; i < words.Length; i++ {
		switch str[i] {
		case 'a':
			s[i] = Absent
		case 'c':
			s[i] = Correct
		case 'p':
			s[i] = Present
		default:
			return s, fmt.Errorf("%w: %q: invalid character %q at position %d",
				ErrMalformedScore, str, str[i], i+1)
		}
	}
	return s, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(str string) Score {
	s, err := Parse(str)
	if err != nil {
		panic(err)
	}
	return s
}

// MarshalText encodes s in the a/c/p form.
func (s Score) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes the a/c/p form.
func (s *Score) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
