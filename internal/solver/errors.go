package solver

import "errors"

var (
	// ErrContradiction means a score left no candidate. The game cannot continue.
	ErrContradiction = errors.New("contradiction: no candidates left")

	// ErrIllegalGuess means a guess is not guessable, or breaks hard-mode rules.
	ErrIllegalGuess = errors.New("illegal guess")

	// ErrEmptyGuessSpace means no legal guess exists for a non-empty pool.
	// It only happens when the word lists break the solutions ⊆ guessable rule.
	ErrEmptyGuessSpace = errors.New("no legal guesses")
)
