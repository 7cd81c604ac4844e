// internal/game/engine.go
//
// Game engine for one solver session.
// Responsibilities:
//   - Seed a solver with every solution and an empty history.
//   - Accept a guess (validated against the word list and hard mode).
//   - Accept the score for that guess and narrow the candidates.
//   - Track state transitions: awaiting guess → awaiting score → won/contradiction.
//
// Notes:
//   - Scores come from the caller, from a known secret (Oracle) or from any other
//     Feedback implementation such as the Absurdle adversary.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// snapshotLimit is the pool size at or below which Snapshot lists the candidates.
const snapshotLimit = 20

var (
	// ErrOutOfTurn is returned when a guess is made while a score is pending,
	// or a score is given with no guess pending.
	ErrOutOfTurn = errors.New("game: out of turn")

	// ErrFinished is returned for any move after the game has ended.
	ErrFinished = errors.New("game: finished")

	// ErrNoFeedback is returned by AutoScore on a game scored by hand.
	ErrNoFeedback = errors.New("game: no automatic feedback")

	// ErrOutOfGuesses is returned by Play when the guess budget runs out.
	ErrOutOfGuesses = errors.New("game: out of guesses")
)

// Game is one puzzle being solved. It is not safe for concurrent use.
type Game struct {
	ID   string
	Mode Mode

	// Feedback, when set, lets AutoScore answer the pending guess.
	Feedback Feedback

	solver  *solver.Solver
	state   State
	pending words.Word
}

// New constructs a game ready for its first guess.
func New(ws *words.WordSet, opts solver.Options) *Game {
	g := &Game{
		ID:     randomID(),
		Mode:   ModeWordle,
		solver: solver.New(ws, opts),
		state:  Init,
	}
	g.state = AwaitingGuess
	return g
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Pending returns the guess waiting for a score, if any.
func (g *Game) Pending() (words.Word, bool) {
	return g.pending, g.state == AwaitingScore
}

// Turns is the number of scored guesses so far.
func (g *Game) Turns() int { return len(g.solver.History()) }

// Pool returns the remaining candidates.
func (g *Game) Pool() solver.Pool { return g.solver.Pool() }

// History returns the scored turns. It must not be modified.
func (g *Game) History() solver.History { return g.solver.History() }

// Options returns the solver options the game was created with.
func (g *Game) Options() solver.Options { return g.solver.Options() }

// Suggest returns the strategy's choice for the next guess.
func (g *Game) Suggest(ctx context.Context) (solver.Choice, error) {
	if err := g.expect(AwaitingGuess); err != nil {
		return solver.Choice{}, err
	}
	return g.solver.NextGuess(ctx)
}

// Evaluate reports how guess would split the current candidates.
func (g *Game) Evaluate(guess words.Word) solver.Choice {
	return g.solver.Evaluate(guess)
}

// Guess submits the word that is being played. An illegal guess returns an
// error wrapping solver.ErrIllegalGuess and leaves the game unchanged.
func (g *Game) Guess(w words.Word) error {
	if err := g.expect(AwaitingGuess); err != nil {
		return err
	}
	if err := g.solver.CheckGuess(w); err != nil {
		return err
	}
	g.pending = w
	g.state = AwaitingScore
	return nil
}

// Score applies the score for the pending guess.
//
// An all-Correct score wins the game. A score no candidate agrees with ends it
// in Contradiction and returns an error wrapping solver.ErrContradiction.
func (g *Game) Score(sc score.Score) error {
	if err := g.expect(AwaitingScore); err != nil {
		return err
	}
	if err := g.solver.Respond(g.pending, sc); err != nil {
		if errors.Is(err, solver.ErrContradiction) {
			g.state = Contradiction
		}
		return err
	}
	if sc.IsWin() {
		g.state = Won
	} else {
		g.state = AwaitingGuess
	}
	return nil
}

// ScoreString parses s as a/p/c and applies it. A malformed string returns an
// error wrapping score.ErrMalformedScore and the guess stays pending.
func (g *Game) ScoreString(s string) error {
	if err := g.expect(AwaitingScore); err != nil {
		return err
	}
	sc, err := score.Parse(s)
	if err != nil {
		return err
	}
	return g.Score(sc)
}

// AutoScore asks Feedback for the pending guess's score and applies it.
func (g *Game) AutoScore() (score.Score, error) {
	if err := g.expect(AwaitingScore); err != nil {
		return score.Score{}, err
	}
	if g.Feedback == nil {
		return score.Score{}, ErrNoFeedback
	}
	sc, err := g.Feedback.Score(g.pending, g.Pool())
	if err != nil {
		return score.Score{}, err
	}
	return sc, g.Score(sc)
}

// Snapshot returns a copy of the game's visible state.
func (g *Game) Snapshot() Snapshot {
	opts := g.solver.Options()
	snap := Snapshot{
		ID:       g.ID,
		Mode:     g.Mode,
		State:    g.state,
		Strategy: opts.Strategy,
		Hard:     opts.Hard,
		History:  append(solver.History{}, g.solver.History()...),
		Left:     g.Pool().Len(),
	}
	if w, ok := g.Pending(); ok {
		snap.Pending = &w
	}
	if snap.Left <= snapshotLimit {
		snap.Candidates = g.Pool().Words()
	}
	return snap
}

func (g *Game) expect(s State) error {
	switch {
	case g.state.Terminal():
		return fmt.Errorf("%w: %s", ErrFinished, g.state)
	case g.state != s:
		return fmt.Errorf("%w: game is %s", ErrOutOfTurn, g.state)
	}
	return nil
}

// Feedback produces the score for a guess.
type Feedback interface {
	Score(guess words.Word, pool solver.Pool) (score.Score, error)
}

// Oracle scores guesses against a known secret.
type Oracle struct {
	Secret words.Word
}

func (o Oracle) Score(guess words.Word, _ solver.Pool) (score.Score, error) {
	return score.Compute(guess, o.Secret), nil
}

// Play lets the strategy play g to the end against fb and returns the number
// of guesses used, counting the winning one. maxGuesses <= 0 means no limit.
func Play(ctx context.Context, g *Game, fb Feedback, maxGuesses int) (int, error) {
	for n := 1; ; n++ {
		if maxGuesses > 0 && n > maxGuesses {
			return n - 1, fmt.Errorf("%w after %d", ErrOutOfGuesses, maxGuesses)
		}
		ch, err := g.Suggest(ctx)
		if err != nil {
			return n - 1, err
		}
		if err := g.Guess(ch.Guess); err != nil {
			return n - 1, err
		}
		sc, err := fb.Score(ch.Guess, g.Pool())
		if err != nil {
			return n - 1, err
		}
		if err := g.Score(sc); err != nil {
			return n, err
		}
		if g.state == Won {
			return n, nil
		}
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
