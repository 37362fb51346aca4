// internal/clue/clue.go
//
// Clue types and the scoring rule.
// Defines:
//   - Kind:   per-letter result of a guess (right/elsewhere/wrong).
//   - Clue:   a Kind together with the letter that was guessed.
//   - Vector: the five clues for one guess, aligned to the guess positions.
//   - Check:  the classic two-pass scoring of a guess against a secret.

package clue

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Kind represents the evaluation result for a single letter in a guess.
//   - Right:     letter is correct and in the correct position.
//   - Elsewhere: letter exists in the secret but in a different position.
//   - Wrong:     letter is not in the secret, or every copy is already accounted for.
type Kind uint8

const (
	Wrong Kind = iota
	Elsewhere
	Right
)

// String returns the JSON/text name of the kind.
func (k Kind) String() string {
	switch k {
	case Right:
		return "right"
	case Elsewhere:
		return "elsewhere"
	default:
		return "wrong"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "right":
		*k = Right
	case "elsewhere":
		*k = Elsewhere
	case "wrong":
		*k = Wrong
	default:
		return fmt.Errorf("unknown clue kind %q", string(b))
	}
	return nil
}

// Clue is the feedback for one position. Letter is always the guessed letter.
type Clue struct {
	Kind   Kind
	Letter byte
}

// String renders the clue as R(c), E(c) or W(c).
func (c Clue) String() string {
	return fmt.Sprintf("%c(%c)", strings.ToUpper(c.Kind.String())[0], c.Letter)
}

// Vector holds the clues for one guess, index-aligned to its letters.
type Vector [words.Length]Clue

// Check scores guess against secret.
//
// Pass 1:
//   - Mark exact matches as Right and consume one copy of that letter.
// Pass 2:
//   - Left to right over the remaining positions: if an unconsumed copy of
//     the letter remains, mark Elsewhere and consume it; otherwise Wrong.
//
// Exact matches must consume their letters before any Elsewhere is handed out,
// so a letter guessed more often than it occurs is never credited twice.
func Check(secret, guess words.Word) Vector {
	var v Vector
	var counts [26]int8
	var settled [words.Length]bool

	for i := 0; i < words.Length; i++ {
		counts[secret[i]-'a']++
	}

	// First pass: exact matches.
	for i := 0; i < words.Length; i++ {
		if guess[i] == secret[i] {
			v[i] = Clue{Kind: Right, Letter: guess[i]}
			settled[i] = true
			counts[guess[i]-'a']--
		}
	}

	// Second pass: elsewhere/wrong for unsettled positions.
	for i := 0; i < words.Length; i++ {
		if settled[i] {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			v[i] = Clue{Kind: Elsewhere, Letter: guess[i]}
			counts[j]--
		} else {
			v[i] = Clue{Kind: Wrong, Letter: guess[i]}
		}
	}
	return v
}

// Solved reports whether every clue is Right.
func (v Vector) Solved() bool {
	for _, c := range v {
		if c.Kind != Right {
			return false
		}
	}
	return true
}

// Word returns the guess the vector describes.
func (v Vector) Word() words.Word {
	var w words.Word
	for i, c := range v {
		w[i] = c.Letter
	}
	return w
}

// String renders the vector as [R(c) E(a) W(x) ...].
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
