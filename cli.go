// cli.go
//
// Subcommands. Each one parses its own flag set, so "solve -h" lists only
// the flags solve understands. Defaults come from the environment config.

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/absurdle"
	"github.com/robalobadob/wordle-solver/internal/batch"
	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/results"
	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var errUsage = errors.New("unknown command")

// listLimit is the pool size at or below which the remaining words are printed.
const listLimit = 10

func run(ctx context.Context, cfg config.Config, cmd string, args []string, in io.Reader, out io.Writer) error {
	switch cmd {
	case "solve":
		return runSolve(ctx, cfg, args, in, out)
	case "absurdle":
		return runAbsurdle(ctx, cfg, args, in, out)
	case "challenge":
		return runChallenge(ctx, cfg, args, out)
	case "multi":
		return runMulti(ctx, cfg, args, in, out)
	case "solve-all":
		return runSolveAll(ctx, cfg, args, out)
	case "serve":
		return runServe(ctx, cfg, args)
	case "hash-password":
		return runHashPassword(args, in, out)
	case "help", "-h", "--help":
		return flag.ErrHelp
	}
	return fmt.Errorf("%w %q", errUsage, cmd)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// solverFlags registers -strategy, -hard, -rule, -workers and -v on fs.
// The returned options are complete once fs has been parsed.
func solverFlags(fs *flag.FlagSet, cfg config.Config) *solver.Options {
	opts := cfg.Solver
	fs.TextVar(&opts.Strategy, "strategy", cfg.Solver.Strategy, "ranking strategy: groupsize or groupcount")
	fs.BoolVar(&opts.Hard, "hard", cfg.Solver.Hard, "only play guesses allowed in hard mode")
	fs.Func("rule", "hard-mode rule: consistent or revealed (default "+cfg.Solver.Rule.String()+")", func(s string) error {
		r, err := solver.ParseHardRule(s)
		opts.Rule = r
		return err
	})
	fs.IntVar(&opts.Workers, "workers", cfg.Solver.Workers, "ranking workers, 0 for one per CPU")
	fs.BoolFunc("v", "log every ranking decision (debug level)", func(string) error {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return nil
	})
	return &opts
}

// secretFlags registers -secret and -daily. The returned func resolves them
// after parsing; it returns a zero word and false when neither was given.
func secretFlags(fs *flag.FlagSet, cfg config.Config) func(*words.WordSet) (words.Word, bool, error) {
	secret := fs.String("secret", "", "score guesses against this solution instead of asking")
	useDaily := fs.Bool("daily", false, "score guesses against today's secret")
	return func(ws *words.WordSet) (words.Word, bool, error) {
		switch {
		case *secret != "":
			w, err := words.Parse(*secret)
			if err != nil {
				return w, false, err
			}
			if !ws.IsSolution(w) {
				return w, false, fmt.Errorf("%s is not in the solutions list", w)
			}
			return w, true, nil
		case *useDaily:
			w := daily.Secret(ws, time.Now(), cfg.DailySalt)
			log.Debug().Str("date", daily.DateKey(time.Now())).Msg("using the daily secret")
			return w, true, nil
		}
		return words.Word{}, false, nil
	}
}

func runSolve(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	fs := newFlagSet("solve")
	opts := solverFlags(fs, cfg)
	resolve := secretFlags(fs, cfg)
	enter := fs.Bool("enter-guesses", false, "type the word actually played each turn; an empty line keeps the suggestion")
	maxGuesses := fs.Int("max-guesses", 0, "give up after this many guesses, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := loadWords(cfg)
	if err != nil {
		return err
	}
	g := game.New(ws, *opts)
	secret, ok, err := resolve(ws)
	if err != nil {
		return err
	}
	if ok {
		g.Feedback = game.Oracle{Secret: secret}
	}
	return play(ctx, g, newPrompter(in, out), *enter, *maxGuesses)
}

func runAbsurdle(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	fs := newFlagSet("absurdle")
	opts := solverFlags(fs, cfg)
	enter := fs.Bool("enter-guesses", false, "choose each guess yourself; an empty line keeps the suggestion")
	maxGuesses := fs.Int("max-guesses", 0, "give up after this many guesses, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := loadWords(cfg)
	if err != nil {
		return err
	}
	g := game.New(ws, *opts)
	g.Mode = game.ModeAbsurdle
	g.Feedback = absurdle.Adversary{}
	return play(ctx, g, newPrompter(in, out), *enter, *maxGuesses)
}

// play runs one game on the terminal. Scores come from g.Feedback when it is
// set and are typed in otherwise.
func play(ctx context.Context, g *game.Game, p *prompter, enter bool, maxGuesses int) error {
	for turn := 1; ; turn++ {
		if maxGuesses > 0 && turn > maxGuesses {
			return fmt.Errorf("%w after %d", game.ErrOutOfGuesses, maxGuesses)
		}
		ch, err := g.Suggest(ctx)
		if err != nil {
			return err
		}
		p.printf("%d. %s\n", turn, describe(ch))

		if err := enterGuess(g, p, ch.Guess, enter); err != nil {
			return err
		}
		if g.Feedback != nil {
			sc, err := g.AutoScore()
			if err != nil {
				return err
			}
			p.printf("   score %s\n", sc)
		} else if err := enterScore(g, p, "   score (a/p/c): "); err != nil {
			return err
		}

		if g.State() == game.Won {
			p.printf("solved in %d\n", turn)
			return nil
		}
		p.printf("   %s\n", leftLine(g.Pool()))
	}
}

func enterGuess(g *game.Game, p *prompter, suggestion words.Word, enter bool) error {
	if !enter {
		return g.Guess(suggestion)
	}
	for {
		line, err := p.ask("   guess [" + suggestion.String() + "]: ")
		if err != nil {
			return err
		}
		w := suggestion
		if line != "" {
			if w, err = words.Parse(line); err != nil {
				p.printf("   %v\n", err)
				continue
			}
		}
		if w != suggestion {
			p.printf("   %s\n", describe(g.Evaluate(w)))
		}
		err = g.Guess(w)
		if errors.Is(err, solver.ErrIllegalGuess) {
			p.printf("   %v\n", err)
			continue
		}
		return err
	}
}

func enterScore(g *game.Game, p *prompter, prompt string) error {
	for {
		line, err := p.ask(prompt)
		if err != nil {
			return err
		}
		err = g.ScoreString(line)
		if errors.Is(err, score.ErrMalformedScore) {
			p.printf("   %v: want five of a, p, c\n", err)
			continue
		}
		return err
	}
}

func describe(ch solver.Choice) string {
	s := fmt.Sprintf("%s  %d groups, largest %d", ch.Guess, ch.Eval.Count, ch.Eval.Size)
	if !ch.InPool {
		s += "  (cannot be the answer)"
	}
	return s
}

func leftLine(p solver.Pool) string {
	if p.Len() > listLimit {
		return fmt.Sprintf("%d left", p.Len())
	}
	return fmt.Sprintf("%d left: %s", p.Len(), strings.Join(wordStrings(p.Words()), " "))
}

func runChallenge(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("challenge")
	opts := solverFlags(fs, cfg)
	target := fs.String("target", "", "solution the adversary must be forced to keep (required)")
	maxDepth := fs.Int("max-depth", absurdle.DefaultMaxDepth, "most guesses before the target, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *target == "" {
		return fmt.Errorf("challenge: -target is required")
	}
	t, err := words.Parse(*target)
	if err != nil {
		return err
	}

	ws, err := loadWords(cfg)
	if err != nil {
		return err
	}
	c := absurdle.Challenge{
		Words:    ws,
		Target:   t,
		Hard:     opts.Hard,
		Rule:     opts.Rule,
		MaxDepth: *maxDepth,
		Workers:  opts.Workers,
	}
	path, err := c.Solve(ctx)
	if err != nil {
		return err
	}
	for i, w := range path {
		fmt.Fprintf(out, "%d. %s  %s\n", i+1, w, score.Compute(w, t))
	}
	return nil
}

func runMulti(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	fs := newFlagSet("multi")
	opts := solverFlags(fs, cfg)
	boards := fs.Int("boards", 4, "number of boards")
	secrets := fs.String("secrets", "", "comma-separated secrets, one per board; scores are asked for when empty")
	maxGuesses := fs.Int("max-guesses", 0, "give up after this many guesses, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := loadWords(cfg)
	if err != nil {
		return err
	}
	var oracles []words.Word
	if *secrets != "" {
		for _, s := range strings.Split(*secrets, ",") {
			w, err := words.Parse(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			if !ws.IsSolution(w) {
				return fmt.Errorf("%s is not in the solutions list", w)
			}
			oracles = append(oracles, w)
		}
		*boards = len(oracles)
	}
	if *boards < 1 {
		return fmt.Errorf("multi: need at least one board")
	}

	m := solver.NewMulti(ws, *boards, *opts)
	p := newPrompter(in, out)
	for turn := 1; ; turn++ {
		if *maxGuesses > 0 && turn > *maxGuesses {
			return fmt.Errorf("%w after %d", game.ErrOutOfGuesses, *maxGuesses)
		}
		ch, err := m.NextGuess(ctx)
		if errors.Is(err, solver.ErrAllSolved) {
			p.printf("all %d boards solved in %d\n", m.Len(), turn-1)
			return nil
		}
		if err != nil {
			return err
		}
		p.printf("%d. %s\n", turn, describe(ch))

		for i := 0; i < m.Len(); i++ {
			if m.Done(i) {
				continue
			}
			if oracles != nil {
				sc := score.Compute(ch.Guess, oracles[i])
				if err := m.Respond(i, ch.Guess, sc); err != nil {
					return err
				}
				p.printf("   board %d: %s  %s\n", i+1, sc, boardLine(m, i))
				continue
			}
			if err := multiScore(m, p, i, ch.Guess); err != nil {
				return err
			}
			p.printf("   board %d: %s\n", i+1, boardLine(m, i))
		}
	}
}

func multiScore(m *solver.Multi, p *prompter, board int, guess words.Word) error {
	for {
		line, err := p.ask(fmt.Sprintf("   board %d score (a/p/c): ", board+1))
		if err != nil {
			return err
		}
		sc, err := score.Parse(line)
		if err != nil {
			p.printf("   %v: want five of a, p, c\n", err)
			continue
		}
		return m.Respond(board, guess, sc)
	}
}

func boardLine(m *solver.Multi, i int) string {
	if m.Done(i) {
		return "solved"
	}
	return leftLine(m.Board(i).Pool())
}

func runSolveAll(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("solve-all")
	opts := solverFlags(fs, cfg)
	modes := fs.String("modes", "", "comma-separated modes such as groupsize,groupcount+hard; empty runs all four")
	maxGuesses := fs.Int("max-guesses", batch.DefaultMaxGuesses, "count a game as unsolved after this many guesses")
	save := fs.Bool("save", false, "store the report in the results database at DB_PATH")
	note := fs.String("note", "", "note stored with a saved report")
	progress := fs.Bool("progress", isatty.IsTerminal(os.Stderr.Fd()), "show a progress bar on stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := loadWords(cfg)
	if err != nil {
		return err
	}
	bc := batch.Config{
		Rule:       opts.Rule,
		MaxGuesses: *maxGuesses,
		Workers:    opts.Workers,
	}
	if *modes != "" {
		for _, s := range strings.Split(*modes, ",") {
			m, err := batch.ParseMode(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			bc.Modes = append(bc.Modes, m)
		}
	}
	if *progress {
		bc.Progress = os.Stderr
	}

	rep, err := batch.Run(ctx, ws, bc)
	if err != nil {
		return err
	}
	if err := rep.WriteTable(out); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d secrets in %s\n", len(rep.Secrets), rep.Elapsed.Round(time.Millisecond))
	if !*save {
		return nil
	}

	db, err := results.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := results.Migrate(db); err != nil {
		return err
	}
	id, err := results.NewStore(db).Save(ctx, rep, *note)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved as run %d\n", id)
	return nil
}

func runServe(ctx context.Context, cfg config.Config, args []string) error {
	fs := newFlagSet("serve")
	port := fs.String("port", cfg.Port, "listen port")
	noDB := fs.Bool("no-db", false, "run without the results database; /batch answers 503")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ws, err := loadWords(cfg)
	if err != nil {
		return err
	}
	var res *results.Store
	if !*noDB {
		db, err := results.OpenDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := results.Migrate(db); err != nil {
			return err
		}
		res = results.NewStore(db)
	}

	sessions := store.NewMemoryStore(cfg.SessionTTL)
	go sessions.RunSweeper(ctx, time.Minute)

	srv := httpserver.New(ws, sessions, res, httpserver.Options{
		ClientOrigin:      cfg.ClientOrigin,
		JWTSecret:         cfg.JWTSecret,
		JWTExpires:        cfg.JWTExpires,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Solver:            cfg.Solver,
		DailySalt:         cfg.DailySalt,
	})
	hs := &http.Server{Addr: ":" + *port, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info().Str("port", *port).Bool("results", res != nil).Msg("wordle-solver listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := srv.WaitBatch(); err != nil {
		log.Warn().Err(err).Msg("last batch run failed")
	}
	return nil
}

func runHashPassword(args []string, in io.Reader, out io.Writer) error {
	fs := newFlagSet("hash-password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw := fs.Arg(0)
	if pw == "" {
		line, err := newPrompter(in, out).askRaw("password: ")
		if err != nil {
			return err
		}
		pw = line
	}
	hash, err := httpserver.HashPassword(pw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

// prompter reads one answer per line.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{sc: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// ask prints prompt and returns the next line, trimmed and lower-cased.
func (p *prompter) ask(prompt string) (string, error) {
	line, err := p.askRaw(prompt)
	return strings.ToLower(line), err
}

// askRaw is ask without case folding. End of input is io.ErrUnexpectedEOF.
func (p *prompter) askRaw(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

func wordStrings(ws []words.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
