// main.go
//
// Entry point for the wordle-solver binary.
// Responsibilities:
//   - Load configuration (.env + environment) and set up zerolog.
//   - Load the word lists once; every subcommand shares the same *words.WordSet.
//   - Dispatch to a subcommand (see cli.go).

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/words"
)

const usage = `usage: wordle-solver <command> [flags]

commands:
  solve          suggest guesses; scores are typed in, or computed with -secret / -daily
  absurdle       let the solver play against the adversary
  challenge      find guesses that force the adversary to keep -target
  multi          solve several boards with shared guesses
  solve-all      play every solution with both strategies and print a histogram
  serve          run the HTTP API
  hash-password  print a bcrypt hash for ADMIN_PASSWORD_HASH

run "wordle-solver <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, os.Args[1], os.Args[2:], os.Stdin, os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errUsage):
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	default:
		log.Error().Err(err).Str("command", os.Args[1]).Msg("failed")
		os.Exit(1)
	}
}

// setupLogging installs the global zerolog logger: human-readable on a
// terminal, JSON otherwise.
func setupLogging(w *os.File, level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	var out io.Writer = w
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// loadWords loads the configured word lists.
func loadWords(cfg config.Config) (*words.WordSet, error) {
	ws, err := words.Load(cfg.Words)
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	return ws, nil
}
