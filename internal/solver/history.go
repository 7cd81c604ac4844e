package solver

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/score"
)

// Turn is one guess and the score it received.
type Turn struct {
	Guess Word        `json:"guess"`
	Score score.Score `json:"score"`
}

// History is the append-only list of turns in one game.
type History []Turn

// HardRule selects how hard mode restricts guesses.
type HardRule uint8

const (
	// HardConsistent allows only guesses that could still be the answer:
	// replaying every previous guess against the new guess must reproduce the
	// recorded score. Letters shown absent can never be reused.
	HardConsistent HardRule = iota

	// HardRevealed is the rule the Wordle site enforces: correct letters stay
	// in place and present letters are reused, at least as many times as they
	// were revealed. Absent letters are not checked.
	HardRevealed
)

func (r HardRule) String() string {
	switch r {
	case HardConsistent:
		return "consistent"
	case HardRevealed:
		return "revealed"
	}
	return fmt.Sprintf("HardRule(%d)", uint8(r))
}

// ParseHardRule maps a config value to a HardRule.
func ParseHardRule(s string) (HardRule, error) {
	switch s {
	case "", "consistent":
		return HardConsistent, nil
	case "revealed":
		return HardRevealed, nil
	}
	return 0, fmt.Errorf("hard-mode rules are 'consistent' and 'revealed', got %q", s)
}

// Legal reports whether guess satisfies every turn under rule.
func (h History) Legal(guess Word, rule HardRule) bool {
	for _, t := range h {
		if !t.allows(guess, rule) {
			return false
		}
	}
	return true
}

func (t Turn) allows(guess Word, rule HardRule) bool {
	if rule == HardConsistent {
		return score.Compute(t.Guess, guess) == t.Score
	}

	var need [26]uint8
	var present [26]bool
	for i, sym := range t.Score {
		l := t.Guess[i] - 'a'
		switch sym {
		case score.Correct:
			if guess[i] != t.Guess[i] {
				return false
			}
			need[l]++
		case score.Present:
			need[l]++
			present[l] = true
		}
	}
	have := guess.Counts()
	for l := range need {
		if present[l] && have[l] < need[l] {
			return false
		}
	}
	return true
}
