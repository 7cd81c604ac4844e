// internal/words/load.go
//
// Loading word lists from files or the embedded defaults.
//
// Selection (Load):
//  1. AnswersFile and AllowedFile both set: solutions from the first,
//     guessable words from the second.
//  2. Only AllowedFile set: that file serves as both lists.
//  3. Neither set: the embedded lists from the assets package.
//
// File format: one word per line, 5 lowercase letters. Blank lines and lines
// starting with "#" are skipped. Any other line is an error; a bad line is
// reported with its line number rather than silently dropped.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/assets"
)

// Sources names the files to load. Empty fields fall back as described above.
type Sources struct {
	AnswersFile string
	AllowedFile string
}

// Load builds a WordSet from src.
func Load(src Sources) (*WordSet, error) {
	var sol, guess []Word
	var err error

	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if sol, err = ReadFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if guess, err = ReadFile(src.AllowedFile); err != nil {
			return nil, err
		}

	case src.AnswersFile == "" && src.AllowedFile != "":
		if guess, err = ReadFile(src.AllowedFile); err != nil {
			return nil, err
		}
		sol = guess

	case src.AnswersFile != "":
		return nil, errors.New("words: answers file given without allowed file")

	default:
		if sol, err = embedded(assets.AnswersList); err != nil {
			return nil, err
		}
		if guess, err = embedded(assets.AllowedList); err != nil {
			return nil, err
		}
	}

	ws, err := NewSet(sol, guess)
	if err != nil {
		return nil, err
	}
	s, g := ws.Stats()
	log.Debug().Int("solutions", s).Int("guessable", g).Msg("word lists loaded")
	return ws, nil
}

// ReadFile loads one word per line from path.
func ReadFile(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ReadList reads one word per line from r.
func ReadList(r io.Reader) ([]Word, error) {
	var out []Word
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

func embedded(list func() ([]string, error)) ([]Word, error) {
	lines, err := list()
	if err != nil {
		return nil, err
	}
	return parseAll(lines)
}
