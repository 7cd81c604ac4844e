// internal/words/word.go
//
// Word is the fixed-length value type every other package works with.
// The length is part of the type, so a Word can never hold 4 or 6 letters;
// only Parse can fail, and it fails for anything that is not 5 of a-z.

package words

import (
	"bytes"
	"errors"
	"fmt"
)

// Length is the number of letters in every word.
const Length = 5

// Word is a five-letter lowercase word.
type Word [Length]byte

// ErrInvalidWord is returned for strings that are not 5 lowercase ASCII letters.
var ErrInvalidWord = errors.New("invalid word")

// Parse converts s into a Word.
func Parse(s string) (Word, error) {
	var w Word
	if len(s) != Length {
		return w, fmt.Errorf("%w: %q (must be %d lowercase letters)", ErrInvalidWord, s, Length)
	}
	for i := 0; i < Length; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, fmt.Errorf("%w: %q (must be %d lowercase letters)", ErrInvalidWord, s, Length)
		}
		w[i] = c
	}
	return w, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// MustParseAll parses a list of literals.
func MustParseAll(ss ...string) []Word {
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = MustParse(s)
	}
	return out
}

func (w Word) String() string { return string(w[:]) }

// MarshalText encodes w as its letters.
func (w Word) MarshalText() ([]byte, error) { return w[:], nil }

// UnmarshalText parses and validates a word.
func (w *Word) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Compare orders words by their letter sequence.
func (w Word) Compare(o Word) int { return bytes.Compare(w[:], o[:]) }

// Less reports whether w sorts before o.
func (w Word) Less(o Word) bool { return w.Compare(o) < 0 }

// Counts returns how many times each letter a-z occurs in w.
func (w Word) Counts() [26]uint8 {
	var c [26]uint8
	for _, b := range w {
		c[b-'a']++
	}
	return c
}

// Contains reports whether letter occurs anywhere in w.
func (w Word) Contains(letter byte) bool {
	return bytes.IndexByte(w[:], letter) >= 0
}
