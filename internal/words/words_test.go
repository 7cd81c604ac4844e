package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"cargo", false},
		{"zzzzz", false},
		{"carg", true},
		{"cargos", true},
		{"Cargo", true},
		{"carg0", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWord)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, w.String())
		})
	}
}

func TestWordOrderingAndCounts(t *testing.T) {
	a, b := MustParse("arise"), MustParse("cargo")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, 0, a.Compare(a))

	c := MustParse("sassy").Counts()
	assert.Equal(t, uint8(3), c['s'-'a'])
	assert.Equal(t, uint8(1), c['a'-'a'])
	assert.True(t, MustParse("sassy").Contains('y'))
	assert.False(t, MustParse("sassy").Contains('z'))
}

func TestNewSetMergesSolutionsIntoGuessable(t *testing.T) {
	ws, err := FromStrings(
		[]string{"cargo", "arise", "cargo"},
		[]string{"zinco", "compt"},
	)
	require.NoError(t, err)

	assert.Equal(t, MustParseAll("arise", "cargo"), ws.Solutions)
	assert.Equal(t, MustParseAll("arise", "cargo", "compt", "zinco"), ws.Guessable)

	for _, w := range ws.Solutions {
		assert.True(t, ws.IsGuessable(w), "solution %s must be guessable", w)
	}
	assert.True(t, ws.IsSolution(MustParse("cargo")))
	assert.False(t, ws.IsSolution(MustParse("zinco")))

	i, ok := ws.SolutionIndex(MustParse("cargo"))
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	s, g := ws.Stats()
	assert.Equal(t, 2, s)
	assert.Equal(t, 4, g)
}

func TestNewSetRejectsEmptySolutions(t *testing.T) {
	_, err := FromStrings(nil, []string{"cargo"})
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestReadList(t *testing.T) {
	in := "# comment\narise\n\ncargo\n  morra  \n"
	got, err := ReadList(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, MustParseAll("arise", "cargo", "morra"), got)

	_, err = ReadList(strings.NewReader("arise\nbad\n"))
	assert.ErrorIs(t, err, ErrInvalidWord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("cargo\ncarol\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("arise\nzinco\n"), 0o644))

	t.Run("both files", func(t *testing.T) {
		ws, err := Load(Sources{AnswersFile: answers, AllowedFile: allowed})
		require.NoError(t, err)
		assert.Equal(t, MustParseAll("cargo", "carol"), ws.Solutions)
		assert.Len(t, ws.Guessable, 4)
	})

	t.Run("allowed only", func(t *testing.T) {
		ws, err := Load(Sources{AllowedFile: allowed})
		require.NoError(t, err)
		assert.Equal(t, ws.Solutions, ws.Guessable)
	})

	t.Run("answers only", func(t *testing.T) {
		_, err := Load(Sources{AnswersFile: answers})
		assert.Error(t, err)
	})

	t.Run("embedded", func(t *testing.T) {
		ws, err := Load(Sources{})
		require.NoError(t, err)
		assert.True(t, ws.IsSolution(MustParse("cargo")))
		assert.True(t, ws.IsGuessable(MustParse("zinco")))
		assert.Greater(t, len(ws.Guessable), len(ws.Solutions))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(Sources{AllowedFile: filepath.Join(dir, "nope.txt")})
		assert.Error(t, err)
	})
}
