package batch

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func smallSet(t *testing.T) *words.WordSet {
	t.Helper()
	ws, err := words.FromStrings(
		[]string{"arise", "cargo", "morra", "zinco", "carol", "compt"},
		[]string{"xqzjv", "jumbo"},
	)
	require.NoError(t, err)
	return ws
}

func TestRun(t *testing.T) {
	ws := smallSet(t)
	var progress bytes.Buffer
	rep, err := Run(context.Background(), ws, Config{Workers: 3, Progress: &progress})
	require.NoError(t, err)

	require.Len(t, rep.Guesses, 4)
	for m := range rep.Modes {
		require.Len(t, rep.Guesses[m], len(ws.Solutions))
		for i, n := range rep.Guesses[m] {
			assert.GreaterOrEqual(t, n, 1, "%s %s", rep.Modes[m], ws.Solutions[i])
		}
		s := rep.Summary(m)
		assert.Equal(t, len(ws.Solutions), s.Solved)
		assert.Empty(t, rep.Unsolved(m))

		total := 0
		for _, b := range s.Buckets {
			total += b.Words
		}
		assert.Equal(t, s.Solved, total)
	}

	recs := rep.Records()
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, len(ws.Solutions), r.CountWins+r.SizeWins+r.Ties)
	}
}

func TestRunDeterministic(t *testing.T) {
	ws := smallSet(t)
	cfg := Config{Modes: []Mode{{Strategy: solver.GroupCount}}}
	a, err := Run(context.Background(), ws, cfg)
	require.NoError(t, err)
	cfg.Workers = 1
	b, err := Run(context.Background(), ws, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Guesses, b.Guesses)
}

func TestRunRejectsUnknownSecret(t *testing.T) {
	_, err := Run(context.Background(), smallSet(t), Config{Secrets: words.MustParseAll("jumbo")})
	assert.Error(t, err)
}

func TestRunPlaysRepeatedSecretsOnce(t *testing.T) {
	rep, err := Run(context.Background(), smallSet(t), Config{
		Modes:   AllModes()[:1],
		Secrets: words.MustParseAll("cargo", "arise", "cargo"),
		Workers: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, words.MustParseAll("cargo", "arise"), rep.Secrets)
	require.Len(t, rep.Guesses[0], 2)
	assert.Positive(t, rep.Guesses[0][0])
	assert.Positive(t, rep.Guesses[0][1])
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallSet(t), Config{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecordsAndTable(t *testing.T) {
	rep := &Report{
		Modes:   AllModes(),
		Secrets: words.MustParseAll("arise", "cargo", "carol"),
		Guesses: [][]int{
			{2, 3, 3}, // groupsize
			{2, 2, 4}, // groupcount
			{3, 0, 3}, // groupsize+hard
			{3, 4, 2}, // groupcount+hard
		},
	}
	assert.Equal(t, []Record{
		{Hard: false, CountWins: 1, SizeWins: 1, Ties: 1},
		{Hard: true, CountWins: 2, SizeWins: 0, Ties: 1},
	}, rep.Records())

	s := rep.Summary(2)
	assert.Equal(t, 2, s.Solved)
	assert.Equal(t, 3, s.Worst)
	assert.Equal(t, []Bucket{{Guesses: 3, Words: 2}}, s.Buckets)
	assert.Equal(t, words.MustParseAll("cargo"), rep.Unsolved(2))

	var out bytes.Buffer
	require.NoError(t, rep.WriteTable(&out))
	assert.Contains(t, out.String(), "groupcount+hard")
	assert.Contains(t, out.String(), "hard: groupcount better 2, groupsize better 0, tied 1")
}

func TestParseMode(t *testing.T) {
	for _, m := range AllModes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("entropy+hard")
	assert.Error(t, err)
}
