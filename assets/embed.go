// assets/embed.go
//
// Embedded default word lists, used when no list files are configured.
//   - answers.txt: possible solutions.
//   - allowed.txt: extra guessable words (solutions are merged in by the loader).
//
// Blank lines and lines starting with "#" are skipped here; every other line is
// handed to the words package untouched so that it can reject malformed entries.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// AnswersList returns the embedded solution words.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded guess-only words.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
