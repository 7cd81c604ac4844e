// internal/game/types.go
//
// Type definitions for a single solver game:
//   - State: where the game is in its guess/score cycle.
//   - Mode: whether scores come from a fixed secret or the adversary.
//   - Snapshot: the JSON view of a game returned by the HTTP API.

package game

import (
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// State is the position of a game in its guess/score cycle.
type State int

const (
	Init State = iota
	AwaitingGuess
	AwaitingScore
	Won
	Contradiction
)

var stateNames = [...]string{
	Init:          "init",
	AwaitingGuess: "awaiting_guess",
	AwaitingScore: "awaiting_score",
	Won:           "won",
	Contradiction: "contradiction",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal reports whether no further moves are accepted.
func (s State) Terminal() bool { return s == Won || s == Contradiction }

// Mode selects where a game's scores come from.
type Mode string

const (
	ModeWordle   Mode = "wordle"   // scores are entered or computed from a secret
	ModeAbsurdle Mode = "absurdle" // scores are chosen by the adversary
)

// Snapshot is a read-only view of a game.
type Snapshot struct {
	ID         string          `json:"id"`
	Mode       Mode            `json:"mode"`
	State      State           `json:"state"`
	Strategy   solver.Strategy `json:"strategy"`
	Hard       bool            `json:"hard"`
	Pending    *words.Word     `json:"pending,omitempty"` // guess awaiting a score
	History    solver.History  `json:"history"`
	Left       int             `json:"left"`                 // candidates remaining
	Candidates []words.Word    `json:"candidates,omitempty"` // only when few are left
}
