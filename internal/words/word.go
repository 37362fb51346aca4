// internal/words/word.go
//
// Word is the fixed-size value type used everywhere in the solver.
// A Word is five lowercase ASCII letters stored inline, so it can be copied,
// compared with == and used as a map key without allocating.

package words

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of letters in every word.
const Length = 5

// Validation errors. Callers match them with errors.Is.
var (
	ErrLength      = errors.New("word must have 5 letters")
	ErrNotLetters  = errors.New("word must contain only letters a-z")
	ErrUnknownWord = errors.New("word is not in the list of valid words")
)

// Word is a five-letter, lowercase word.
type Word [Length]byte

// Parse trims and lowercases s and returns it as a Word.
func Parse(s string) (Word, error) {
	var w Word
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != Length {
		return w, fmt.Errorf("%q: %w", s, ErrLength)
	}
	for i := 0; i < Length; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return w, fmt.Errorf("%q: %w", s, ErrNotLetters)
		}
		w[i] = s[i]
	}
	return w, nil
}

// MustParse is Parse for literals in tests and defaults; it panics on error.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the word as text.
func (w Word) String() string { return string(w[:]) }

// Contains reports whether letter c appears anywhere in w.
func (w Word) Contains(c byte) bool {
	return w[0] == c || w[1] == c || w[2] == c || w[3] == c || w[4] == c
}

// MarshalText encodes the word as its five letters.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses and validates the word.
func (w *Word) UnmarshalText(b []byte) error {
	p, err := Parse(string(b))
	if err != nil {
		return err
	}
	*w = p
	return nil
}

// Strings converts ws to their text form.
func Strings(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
