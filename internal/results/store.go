package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle-solver/internal/batch"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrNotFound is returned for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Run is the stored header of a batch run.
type Run struct {
	ID         int64     `json:"id"`
	Words      int       `json:"words"`
	MaxGuesses int       `json:"maxGuesses"`
	ElapsedMs  int64     `json:"elapsedMs"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Save stores a report and returns the new run ID.
func (s *Store) Save(ctx context.Context, rep *batch.Report, note string) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(words, max_guesses, elapsed_ms, note) VALUES(?,?,?,?)`,
		len(rep.Secrets), rep.MaxGuesses, rep.Elapsed.Milliseconds(), note,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	for pos, m := range rep.Modes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO run_modes(run_id, position, strategy, hard) VALUES(?,?,?,?)`,
			id, pos, m.Strategy.String(), m.Hard,
		); err != nil {
			return 0, fmt.Errorf("insert mode: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_games(run_id, position, word, guesses) VALUES(?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for pos := range rep.Modes {
		for i, w := range rep.Secrets {
			if _, err = stmt.ExecContext(ctx, id, pos, w.String(), rep.Guesses[pos][i]); err != nil {
				return 0, fmt.Errorf("insert game: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// List returns the most recent runs first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, words, max_guesses, elapsed_ms, note, created_at
        FROM runs
        ORDER BY id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Words, &r.MaxGuesses, &r.ElapsedMs, &r.Note, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get loads a run and rebuilds its report.
func (s *Store) Get(ctx context.Context, id int64) (Run, *batch.Report, error) {
	var r Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, words, max_guesses, elapsed_ms, note, created_at FROM runs WHERE id=?`, id,
	).Scan(&r.ID, &r.Words, &r.MaxGuesses, &r.ElapsedMs, &r.Note, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNotFound
	}
	if err != nil {
		return Run{}, nil, err
	}

	rep := &batch.Report{
		MaxGuesses: r.MaxGuesses,
		Elapsed:    time.Duration(r.ElapsedMs) * time.Millisecond,
	}
	if rep.Modes, err = s.modes(ctx, id); err != nil {
		return Run{}, nil, err
	}
	rep.Guesses = make([][]int, len(rep.Modes))

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, word, guesses FROM run_games WHERE run_id=? ORDER BY position, word`, id)
	if err != nil {
		return Run{}, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pos, n int
			word   string
		)
		if err := rows.Scan(&pos, &word, &n); err != nil {
			return Run{}, nil, err
		}
		if pos < 0 || pos >= len(rep.Modes) {
			return Run{}, nil, fmt.Errorf("run %d: game for unknown mode %d", id, pos)
		}
		if pos == 0 {
			w, err := words.Parse(word)
			if err != nil {
				return Run{}, nil, fmt.Errorf("run %d: %w", id, err)
			}
			rep.Secrets = append(rep.Secrets, w)
		}
		rep.Guesses[pos] = append(rep.Guesses[pos], n)
	}
	return r, rep, rows.Err()
}

func (s *Store) modes(ctx context.Context, id int64) ([]batch.Mode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strategy, hard FROM run_modes WHERE run_id=? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []batch.Mode
	for rows.Next() {
		var (
			name string
			hard bool
		)
		if err := rows.Scan(&name, &hard); err != nil {
			return nil, err
		}
		st, err := solver.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, batch.Mode{Strategy: st, Hard: hard})
	}
	return out, rows.Err()
}
