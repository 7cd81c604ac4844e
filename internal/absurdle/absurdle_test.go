package absurdle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var w = words.MustParse

func TestAdversaryPrefersFewerCorrect(t *testing.T) {
	sc, kept := Adversary{}.Respond(w("shale"), words.MustParseAll("shale", "shame"))
	assert.Equal(t, "cccac", sc.String())
	assert.Equal(t, 1, kept)
}

func TestAdversaryKeepsLargestGroup(t *testing.T) {
	cands := words.MustParseAll("arise", "cargo", "carol", "morra", "zinco", "compt")
	sc, kept := Adversary{}.Respond(w("arise"), cands)
	assert.Equal(t, "ppaaa", sc.String())
	assert.Equal(t, 3, kept)
}

func TestAdversaryTieOnIndex(t *testing.T) {
	// both groups show one present letter and no correct ones
	sc, kept := Adversary{}.Respond(w("abxyz"), words.MustParseAll("qaqqq", "qqqqb"))
	assert.Equal(t, "apaaa", sc.String())
	assert.Equal(t, 1, kept)
}

func TestAdversaryScore(t *testing.T) {
	ws, err := words.FromStrings([]string{"shale", "shame"}, nil)
	require.NoError(t, err)

	pool := solver.NewPool(ws)
	sc, err := Adversary{}.Score(w("shale"), pool)
	require.NoError(t, err)
	assert.Equal(t, score.MustParse("cccac"), sc)

	next, err := pool.Filter(w("shale"), sc)
	require.NoError(t, err)
	assert.Equal(t, words.MustParseAll("shame"), next.Words())
}

func TestChallenge(t *testing.T) {
	ws, err := words.FromStrings([]string{"bbbbb", "ccccc"}, []string{"bcccc"})
	require.NoError(t, err)

	c := &Challenge{Words: ws, Target: w("bbbbb")}
	path, err := c.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, words.MustParseAll("bcccc", "bbbbb"), path)
}

func TestChallengeDepthLimit(t *testing.T) {
	ws, err := words.FromStrings([]string{"aaaaa", "bbbbb", "ccccc"}, nil)
	require.NoError(t, err)

	c := &Challenge{Words: ws, Target: w("ccccc"), MaxDepth: 1, Workers: 2}
	_, err = c.Solve(context.Background())
	assert.ErrorIs(t, err, ErrNoPath)

	// Every guess removes one word, so two guesses come before the target.
	c.MaxDepth = 2
	path, err := c.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, words.MustParseAll("aaaaa", "bbbbb", "ccccc"), path)

	c.MaxDepth = 0
	path, err = c.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, words.MustParseAll("aaaaa", "bbbbb", "ccccc"), path)
}

func TestChallengeRejectsUnknownTarget(t *testing.T) {
	ws, err := words.FromStrings([]string{"bbbbb", "ccccc"}, []string{"bcccc"})
	require.NoError(t, err)

	_, err = (&Challenge{Words: ws, Target: w("bcccc")}).Solve(context.Background())
	assert.Error(t, err)
}
