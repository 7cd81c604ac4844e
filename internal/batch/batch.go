// Package batch plays the solver against every secret in a word list, once per
// mode, and collects how many guesses each game took.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// DefaultMaxGuesses caps a single batch game. A game that reaches it counts as
// unsolved.
const DefaultMaxGuesses = 20

// Mode is one strategy and hard-mode setting.
type Mode struct {
	Strategy solver.Strategy `json:"strategy"`
	Hard     bool            `json:"hard"`
}

func (m Mode) String() string {
	if m.Hard {
		return m.Strategy.String() + "+hard"
	}
	return m.Strategy.String()
}

// ParseMode parses the String form, e.g. "groupcount+hard".
func ParseMode(s string) (Mode, error) {
	name, hard := strings.CutSuffix(s, "+hard")
	st, err := solver.ParseStrategy(name)
	if err != nil {
		return Mode{}, err
	}
	return Mode{Strategy: st, Hard: hard}, nil
}

// AllModes is both strategies, without and then with hard mode.
func AllModes() []Mode {
	return []Mode{
		{Strategy: solver.GroupSize},
		{Strategy: solver.GroupCount},
		{Strategy: solver.GroupSize, Hard: true},
		{Strategy: solver.GroupCount, Hard: true},
	}
}

// Config controls a batch run.
type Config struct {
	Modes      []Mode          // nil means AllModes
	Rule       solver.HardRule // hard-mode rule for hard modes
	Secrets    []words.Word    // nil means every solution; repeats are played once
	MaxGuesses int             // <= 0 means DefaultMaxGuesses
	Workers    int             // concurrent games, <= 0 means GOMAXPROCS
	Progress   io.Writer       // progress bar destination, nil for none
}

// Run plays one game per secret and mode.
//
// Games are independent: each has its own solver and ranks with a single
// worker, and the fan-out is across games. A game that hits the guess cap is
// recorded as unsolved; a game that fails for any other reason fails the run.
func Run(ctx context.Context, ws *words.WordSet, cfg Config) (*Report, error) {
	modes := cfg.Modes
	if len(modes) == 0 {
		modes = AllModes()
	}
	secrets := lo.Uniq(cfg.Secrets)
	if cfg.Secrets == nil {
		secrets = ws.Solutions
	}
	maxGuesses := cfg.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = DefaultMaxGuesses
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	for _, s := range secrets {
		if !ws.IsSolution(s) {
			return nil, fmt.Errorf("batch: %s is not a solution", s)
		}
	}

	rep := &Report{
		Modes:      modes,
		Secrets:    secrets,
		MaxGuesses: maxGuesses,
		Guesses: lo.Times(len(modes), func(int) []int {
			return make([]int, len(secrets))
		}),
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(modes)*len(secrets),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("solving"),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for mi, mode := range modes {
		mi, mode := mi, mode
		opts := solver.Options{Strategy: mode.Strategy, Hard: mode.Hard, Rule: cfg.Rule, Workers: 1}
		for si, secret := range secrets {
			si, secret := si, secret
			g.Go(func() error {
				n, err := game.Play(ctx, game.New(ws, opts), game.Oracle{Secret: secret}, maxGuesses)
				switch {
				case err == nil:
					rep.Guesses[mi][si] = n
				case errors.Is(err, game.ErrOutOfGuesses):
					log.Debug().Str("secret", secret.String()).Str("mode", mode.String()).Msg("unsolved")
				default:
					return fmt.Errorf("%s (%s): %w", secret, mode, err)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	rep.Elapsed = time.Since(start)

	log.Debug().
		Int("games", len(modes)*len(secrets)).
		Dur("elapsed", rep.Elapsed).
		Msg("batch finished")
	return rep, nil
}
