package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func writeList(t *testing.T, dir, name string, ws ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(ws, "\n")+"\n"), 0o644))
	return path
}

func testConfig(t *testing.T, answers, allowed []string) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Words: words.Sources{
			AnswersFile: writeList(t, dir, "answers.txt", answers...),
			AllowedFile: writeList(t, dir, "allowed.txt", allowed...),
		},
		Solver:    solver.Options{Workers: 2},
		DBPath:    filepath.Join(dir, "results.db"),
		DailySalt: "salt",
	}
}

func smallConfig(t *testing.T) config.Config {
	return testConfig(t,
		[]string{"arise", "cargo", "morra", "zinco", "carol", "compt", "shale", "shame"},
		[]string{"xqzjv", "jumbo"},
	)
}

// poolConfig makes every guessable word a solution, so any suggestion can be
// scored as a win.
func poolConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Words: words.Sources{
			AllowedFile: writeList(t, dir, "allowed.txt", "arise", "cargo", "morra", "zinco", "carol", "compt", "shale", "shame"),
		},
		Solver: solver.Options{Workers: 2},
	}
}

func runCmd(t *testing.T, cfg config.Config, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), cfg, args[0], args[1:], strings.NewReader(input), &out)
	return out.String(), err
}

func TestSolveWithSecret(t *testing.T) {
	out, err := runCmd(t, smallConfig(t), "", "solve", "-secret", "shale")
	require.NoError(t, err)
	assert.Contains(t, out, "score ccccc")
	assert.Contains(t, out, "solved in")
}

func TestSolveDaily(t *testing.T) {
	out, err := runCmd(t, smallConfig(t), "", "solve", "-daily", "-hard")
	require.NoError(t, err)
	assert.Contains(t, out, "solved in")
}

func TestSolveRejectsUnknownSecret(t *testing.T) {
	_, err := runCmd(t, smallConfig(t), "", "solve", "-secret", "jumbo")
	assert.ErrorContains(t, err, "not in the solutions list")
}

func TestSolveInteractive(t *testing.T) {
	out, err := runCmd(t, poolConfig(t), "ccxcc\nCCCCC\n", "solve")
	require.NoError(t, err)
	assert.Contains(t, out, "malformed score")
	assert.Contains(t, out, "solved in 1")
}

func TestSolveEnterGuesses(t *testing.T) {
	out, err := runCmd(t, smallConfig(t), "qqqqq\nshale\nccccc\n", "solve", "-enter-guesses")
	require.NoError(t, err)
	assert.Contains(t, out, "illegal guess")
	assert.Contains(t, out, "shale  ")
	assert.Contains(t, out, "solved in 1")
}

func TestSolveEndOfInput(t *testing.T) {
	_, err := runCmd(t, smallConfig(t), "", "solve")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestAbsurdle(t *testing.T) {
	out, err := runCmd(t, smallConfig(t), "", "absurdle")
	require.NoError(t, err)
	assert.Contains(t, out, "solved in")
}

func TestChallenge(t *testing.T) {
	cfg := testConfig(t, []string{"bbbbb", "ccccc"}, []string{"bcccc"})
	out, err := runCmd(t, cfg, "", "challenge", "-target", "bbbbb")
	require.NoError(t, err)
	assert.Equal(t, "1. bcccc  caaaa\n2. bbbbb  ccccc\n", out)

	_, err = runCmd(t, cfg, "", "challenge")
	assert.ErrorContains(t, err, "-target is required")
}

func TestMultiWithSecrets(t *testing.T) {
	out, err := runCmd(t, smallConfig(t), "", "multi", "-secrets", "shale,cargo")
	require.NoError(t, err)
	assert.Contains(t, out, "all 2 boards solved")
}

func TestMultiInteractive(t *testing.T) {
	out, err := runCmd(t, poolConfig(t), "ccccc\n", "multi", "-boards", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "board 1: solved")
	assert.Contains(t, out, "all 1 boards solved in 1")
}

func TestSolveAllSaves(t *testing.T) {
	cfg := smallConfig(t)
	out, err := runCmd(t, cfg, "", "solve-all", "-modes", "groupsize,groupcount", "-progress=false", "-save", "-note", "cli")
	require.NoError(t, err)
	assert.Contains(t, out, "average")
	assert.Contains(t, out, "normal: groupcount better")
	assert.Contains(t, out, "saved as run 1")
	assert.FileExists(t, cfg.DBPath)
}

func TestSolveAllBadMode(t *testing.T) {
	_, err := runCmd(t, smallConfig(t), "", "solve-all", "-modes", "fastest")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	out, err := runCmd(t, config.Config{}, "", "hash-password", "Sw0rdfish!")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("Sw0rdfish!")))

	out, err = runCmd(t, config.Config{}, "Sw0rdfish!\n", "hash-password")
	require.NoError(t, err)
	hash := strings.TrimSpace(strings.TrimPrefix(out, "password: "))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Sw0rdfish!")))

	_, err = runCmd(t, config.Config{}, "", "hash-password", "short")
	assert.Error(t, err)
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCmd(t, config.Config{}, "", "frobnicate")
	assert.ErrorIs(t, err, errUsage)
}
