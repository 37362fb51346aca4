// internal/clue/pattern.go
//
// Text forms of a Vector, used by the CLI and the HTTP API.
//   - Pattern:      five characters, 'g' = Right, 'y' = Elsewhere, '.' = Wrong.
//   - ParsePattern: the reverse, paired with the guess the pattern describes.
//   - JSON:         {"kind":"right","letter":"c"} per clue.

package clue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrPattern is returned for feedback patterns that cannot be parsed.
var ErrPattern = errors.New("feedback pattern must be 5 of g/y/. (or 2/1/0)")

// Pattern renders the vector as g/y/. characters.
func (v Vector) Pattern() string {
	b := make([]byte, len(v))
	for i, c := range v {
		switch c.Kind {
		case Right:
			b[i] = 'g'
		case Elsewhere:
			b[i] = 'y'
		default:
			b[i] = '.'
		}
	}
	return string(b)
}

// ParsePattern pairs a feedback pattern with the guess it was given for.
//
// Accepted characters per position:
//   g G 2        → Right
//   y Y 1        → Elsewhere
//   . - _ x X b B 0  → Wrong
func ParsePattern(guess words.Word, pattern string) (Vector, error) {
	var v Vector
	if len(pattern) != words.Length {
		return v, fmt.Errorf("%q: %w", pattern, ErrPattern)
	}
	for i := 0; i < words.Length; i++ {
		var k Kind
		switch pattern[i] {
		case 'g', 'G', '2':
			k = Right
		case 'y', 'Y', '1':
			k = Elsewhere
		case '.', '-', '_', 'x', 'X', 'b', 'B', '0':
			k = Wrong
		default:
			return v, fmt.Errorf("%q: %w", pattern, ErrPattern)
		}
		v[i] = Clue{Kind: k, Letter: guess[i]}
	}
	return v, nil
}

type clueJSON struct {
	Kind   Kind   `json:"kind"`
	Letter string `json:"letter"`
}

// MarshalJSON encodes the clue with its letter as a one-character string.
func (c Clue) MarshalJSON() ([]byte, error) {
	return json.Marshal(clueJSON{Kind: c.Kind, Letter: string(rune(c.Letter))})
}

// UnmarshalJSON decodes {"kind":..., "letter":...}.
func (c *Clue) UnmarshalJSON(b []byte) error {
	var raw clueJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Letter) != 1 || raw.Letter[0] < 'a' || raw.Letter[0] > 'z' {
		return fmt.Errorf("clue letter %q: %w", raw.Letter, words.ErrNotLetters)
	}
	c.Kind, c.Letter = raw.Kind, raw.Letter[0]
	return nil
}
