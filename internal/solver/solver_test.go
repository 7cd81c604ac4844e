package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/score"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var (
	smallSolutions = []string{"arise", "cargo", "morra", "zinco", "carol", "compt"}
	w              = words.MustParse
)

func smallSet(t *testing.T) *words.WordSet {
	t.Helper()
	ws, err := words.FromStrings(smallSolutions, nil)
	require.NoError(t, err)
	return ws
}

func embeddedSet(t *testing.T) *words.WordSet {
	t.Helper()
	ws, err := words.Load(words.Sources{})
	require.NoError(t, err)
	return ws
}

func TestPoolFilter(t *testing.T) {
	p := NewPool(smallSet(t))
	require.Equal(t, 6, p.Len())

	sc := score.Compute(w("arise"), w("cargo"))
	assert.Equal(t, "ppaaa", sc.String())

	next, err := p.Filter(w("arise"), sc)
	require.NoError(t, err)
	assert.Equal(t, words.MustParseAll("cargo", "carol", "morra"), next.Words())
	assert.True(t, next.Contains(w("cargo")))
	assert.False(t, next.Contains(w("zinco")))
	assert.False(t, next.Contains(w("zzzzz")))

	// the receiver is untouched
	assert.Equal(t, 6, p.Len())
	assert.True(t, p.Contains(w("zinco")))
}

func TestPoolFilterContradiction(t *testing.T) {
	p := NewPool(smallSet(t))
	got, err := p.Filter(w("cargo"), score.MustParse("ccccp"))
	assert.ErrorIs(t, err, ErrContradiction)
	assert.Equal(t, p.Len(), got.Len())
}

func TestPoolPartition(t *testing.T) {
	parts := NewPool(smallSet(t)).Partition(w("arise"))
	assert.Len(t, parts, 4)
	assert.ElementsMatch(t, words.MustParseAll("cargo", "morra", "carol"), parts[score.MustParse("ppaaa")])
	assert.Equal(t, words.MustParseAll("arise"), parts[score.Win])
}

func TestEvaluate(t *testing.T) {
	e := Evaluate(w("arise"), smallSet(t).Solutions)
	assert.Equal(t, Eval{Count: 4, Size: 3}, e)

	assert.Equal(t, Eval{}, Evaluate(w("arise"), nil))
	assert.Equal(t, Eval{Count: 5, Size: 3}, e.Merge(Eval{Count: 1, Size: 1}))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("groupsize")
	require.NoError(t, err)
	assert.Equal(t, GroupSize, s)

	s, err = ParseStrategy("groupcount")
	require.NoError(t, err)
	assert.Equal(t, GroupCount, s)

	_, err = ParseStrategy("entropy")
	assert.Error(t, err)

	var u Strategy
	require.NoError(t, u.UnmarshalText([]byte("groupcount")))
	assert.Equal(t, GroupCount, u)
}

func TestPrefer(t *testing.T) {
	small := Choice{Guess: w("zzzzz"), Eval: Eval{Count: 3, Size: 2}}
	big := Choice{Guess: w("aaaaa"), Eval: Eval{Count: 4, Size: 3}}

	// metric first
	assert.True(t, GroupSize.prefer(small, big))
	assert.True(t, GroupCount.prefer(big, small))

	// then pool membership, then alphabetical
	member := Choice{Guess: w("zzzzz"), Eval: Eval{Count: 2, Size: 2}, InPool: true}
	other := Choice{Guess: w("aaaaa"), Eval: Eval{Count: 2, Size: 2}}
	for _, s := range []Strategy{GroupSize, GroupCount} {
		assert.True(t, s.prefer(member, other), s)
		assert.False(t, s.prefer(other, member), s)
		assert.True(t, s.prefer(other, Choice{Guess: w("bbbbb"), Eval: other.Eval}), s)
	}
}

func TestNextGuessTieBreak(t *testing.T) {
	// Every guess splits the pool into two singletons; "abcde" sorts first
	// but cannot win, so a pool member is chosen, and of those the first.
	ws, err := words.FromStrings([]string{"bbbbb", "ccccc"}, []string{"abcde", "bcaaa"})
	require.NoError(t, err)

	for _, st := range []Strategy{GroupSize, GroupCount} {
		s := New(ws, Options{Strategy: st})
		ch, err := s.NextGuess(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "bbbbb", ch.Guess.String(), st)
		assert.True(t, ch.InPool)
		assert.Equal(t, Eval{Count: 2, Size: 1}, ch.Eval)
	}
}

func TestNextGuessSingleCandidate(t *testing.T) {
	s := New(smallSet(t), Options{})
	require.NoError(t, s.Respond(w("compt"), score.Compute(w("compt"), w("zinco"))))
	require.Equal(t, 1, s.Pool().Len())

	ch, err := s.NextGuess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "zinco", ch.Guess.String())
}

func TestNextGuessDeterministic(t *testing.T) {
	ws := embeddedSet(t)
	for _, st := range []Strategy{GroupSize, GroupCount} {
		a, err := New(ws, Options{Strategy: st, Workers: 1}).NextGuess(context.Background())
		require.NoError(t, err)
		b, err := New(ws, Options{Strategy: st, Workers: 7}).NextGuess(context.Background())
		require.NoError(t, err)
		c, err := New(ws, Options{Strategy: st}).NextGuess(context.Background())
		require.NoError(t, err)
		assert.Equal(t, a, b, st)
		assert.Equal(t, a, c, st)

		n := len(ws.Solutions)
		assert.LessOrEqual(t, a.Eval.Size, n)
		assert.GreaterOrEqual(t, a.Eval.Count, 1)
		assert.LessOrEqual(t, a.Eval.Count, n)
	}
}

func TestNextGuessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(embeddedSet(t), Options{}).NextGuess(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolverWinsEveryEmbeddedSecret(t *testing.T) {
	if testing.Short() {
		t.Skip("plays eighty full games")
	}
	ws := embeddedSet(t)
	for _, hard := range []bool{false, true} {
		for _, secret := range ws.Solutions[:40] {
			s := New(ws, Options{Strategy: GroupSize, Hard: hard})
			prev := s.Pool().Len()
			won := false
			for turn := 0; turn < 12 && !won; turn++ {
				ch, err := s.NextGuess(context.Background())
				require.NoError(t, err)
				if hard {
					require.NoError(t, s.CheckGuess(ch.Guess))
				}
				sc := score.Compute(ch.Guess, secret)
				if sc.IsWin() {
					won = true
					break
				}
				require.NoError(t, s.Respond(ch.Guess, sc))
				assert.LessOrEqual(t, s.Pool().Len(), prev)
				assert.True(t, s.Pool().Contains(secret))
				prev = s.Pool().Len()
			}
			assert.True(t, won, "secret %s hard=%v", secret, hard)
		}
	}
}

func TestHardConsistentRejectsAbsentLetters(t *testing.T) {
	ws, err := words.FromStrings(
		[]string{"arise", "cargo", "carol", "morra", "compt"},
		[]string{"xqzjv", "zinco", "jumbo", "vozhd"},
	)
	require.NoError(t, err)

	s := New(ws, Options{Hard: true})
	require.NoError(t, s.CheckGuess(w("xqzjv")))
	require.NoError(t, s.Respond(w("xqzjv"), score.MustParse("aaaaa")))

	for _, bad := range []string{"zinco", "jumbo", "vozhd", "xqzjv"} {
		assert.ErrorIs(t, s.CheckGuess(w(bad)), ErrIllegalGuess, bad)
	}
	assert.NoError(t, s.CheckGuess(w("cargo")))
	assert.ErrorIs(t, s.CheckGuess(w("zzzzz")), ErrIllegalGuess)

	legal := s.LegalGuesses()
	assert.Equal(t, ws.Solutions, legal)
	assert.Subset(t, ws.Guessable, legal)
}

func TestHardModeLegalSubsetOfNormal(t *testing.T) {
	ws := embeddedSet(t)
	secret := w("cargo")
	for _, rule := range []HardRule{HardConsistent, HardRevealed} {
		hard := New(ws, Options{Hard: true, Rule: rule})
		easy := New(ws, Options{})
		for _, g := range words.MustParseAll("arise", "thumb", "carol") {
			sc := score.Compute(g, secret)
			require.NoError(t, hard.Respond(g, sc))
			require.NoError(t, easy.Respond(g, sc))
			assert.Subset(t, easy.LegalGuesses(), hard.LegalGuesses(), rule)
			assert.Contains(t, hard.LegalGuesses(), secret)
		}
	}
}

func TestHardRevealed(t *testing.T) {
	// "sassy" against "class" reveals: s present, a present, s correct at 4.
	h := History{{Guess: w("sassy"), Score: score.Compute(w("sassy"), w("class"))}}
	require.Equal(t, "ppaca", h[0].Score.String())

	tests := []struct {
		guess string
		legal bool
	}{
		{"class", true},
		{"amiss", true},
		{"bases", false}, // no s in position 4
		{"chase", false}, // only one s
	}
	for _, tt := range tests {
		assert.Equal(t, tt.legal, h.Legal(w(tt.guess), HardRevealed), tt.guess)
	}

	absent := History{{Guess: w("xqzjv"), Score: score.MustParse("aaaaa")}}
	assert.True(t, absent.Legal(w("jumbo"), HardRevealed))
	assert.False(t, absent.Legal(w("jumbo"), HardConsistent))

	fixed := History{{Guess: w("cargo"), Score: score.MustParse("ccaaa")}}
	assert.True(t, fixed.Legal(w("carol"), HardRevealed))
	assert.False(t, fixed.Legal(w("compt"), HardRevealed))
}

func TestParseHardRule(t *testing.T) {
	r, err := ParseHardRule("")
	require.NoError(t, err)
	assert.Equal(t, HardConsistent, r)
	r, err = ParseHardRule("revealed")
	require.NoError(t, err)
	assert.Equal(t, HardRevealed, r)
	_, err = ParseHardRule("strict")
	assert.Error(t, err)
}

func TestEmptyGuessSpace(t *testing.T) {
	_, err := Ranker{}.Best(context.Background(), nil, NewPool(smallSet(t)), GroupSize)
	assert.ErrorIs(t, err, ErrEmptyGuessSpace)
}

func TestMulti(t *testing.T) {
	ws := embeddedSet(t)
	secrets := words.MustParseAll("cargo", "shame", "thumb")
	m := NewMulti(ws, len(secrets), Options{Strategy: GroupCount})

	for round := 0; round < 25 && !m.AllDone(); round++ {
		ch, err := m.NextGuess(context.Background())
		require.NoError(t, err)
		for i, secret := range secrets {
			if m.Done(i) {
				continue
			}
			require.NoError(t, m.Respond(i, ch.Guess, score.Compute(ch.Guess, secret)))
		}
	}
	require.True(t, m.AllDone())

	_, err := m.NextGuess(context.Background())
	assert.ErrorIs(t, err, ErrAllSolved)
	assert.Error(t, m.Respond(0, w("cargo"), score.Win))
	assert.Error(t, m.Respond(9, w("cargo"), score.Win))
}
