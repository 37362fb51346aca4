// internal/filter/filter.go
//
// Candidate filtering: keep only the words that are consistent with a clue vector.
//
// For each position i with clue c, a word w survives when:
//   - Right(ch):     w[i] == ch
//   - Elsewhere(ch): w contains ch and w[i] != ch
//   - Wrong(ch):     w[i] != ch, and if ch is not confirmed by any Right or
//                    Elsewhere clue in the same vector, w must not contain ch.
//
// The confirmed-letter exception is required: when a guess repeats a letter
// more times than the secret holds it, the surplus copies come back Wrong
// while another copy is Right or Elsewhere.

package filter

import (
	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Rule is a clue vector compiled for repeated matching.
type Rule struct {
	clues     clue.Vector
	confirmed uint32 // bit (ch-'a') set for letters with a Right/Elsewhere clue
}

// Compile precomputes the confirmed-letter set for v.
func Compile(v clue.Vector) Rule {
	r := Rule{clues: v}
	for _, c := range v {
		if c.Kind != clue.Wrong {
			r.confirmed |= 1 << (c.Letter - 'a')
		}
	}
	return r
}

// Matches reports whether w is consistent with the rule.
func (r *Rule) Matches(w words.Word) bool {
	for i, c := range r.clues {
		switch c.Kind {
		case clue.Right:
			if w[i] != c.Letter {
				return false
			}
		case clue.Elsewhere:
			if w[i] == c.Letter || !w.Contains(c.Letter) {
				return false
			}
		default:
			if w[i] == c.Letter {
				return false
			}
			if r.confirmed&(1<<(c.Letter-'a')) == 0 && w.Contains(c.Letter) {
				return false
			}
		}
	}
	return true
}

// Matches reports whether w is consistent with v.
func Matches(w words.Word, v clue.Vector) bool {
	r := Compile(v)
	return r.Matches(w)
}

// Filter returns the candidates consistent with v, in their original order.
// The input slice is not modified.
func Filter(candidates []words.Word, v clue.Vector) []words.Word {
	r := Compile(v)
	out := make([]words.Word, 0, len(candidates))
	for _, w := range candidates {
		if r.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}

// Count returns len(Filter(candidates, v)) without allocating.
func Count(candidates []words.Word, v clue.Vector) int {
	r := Compile(v)
	n := 0
	for _, w := range candidates {
		if r.Matches(w) {
			n++
		}
	}
	return n
}

// InPlace filters candidates reusing its backing array and returns the
// shortened slice. Callers must not hold other references to the slice.
func InPlace(candidates []words.Word, v clue.Vector) []words.Word {
	r := Compile(v)
	out := candidates[:0]
	for _, w := range candidates {
		if r.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
