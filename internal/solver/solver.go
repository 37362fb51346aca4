// internal/solver/solver.go
//
// Guess selection for a single game.
// Responsibilities:
//   - Own the candidate answers and the unused probe words for one game.
//   - Return the configured start word first, then pick each guess with an
//     exhaustive greedy search (see search.go).
//   - Narrow both sets with every clue vector fed back by the caller.
//
// State transitions:
//   - init:      no guess yet; Guess returns the start word.
//   - searching: more than one candidate; Guess runs the search.
//   - converged: one candidate; Guess returns it directly.
//   - solved:    detected by the caller from an all-Right clue vector.
//
// A Solver is not safe for concurrent use.

package solver

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/filter"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultStartWord is the opening guess, tuned offline against the search's
// scoring rule. Searching the first round live over the full lists is too slow.
const DefaultStartWord = "tares"

// Solver holds the evolving state of one game.
type Solver struct {
	lexicon   *words.Lexicon
	alternate bool
	workers   int

	candidates []words.Word // answers still consistent with every clue
	probes     []words.Word // unused guesses still consistent with every clue
	startWord  words.Word
	lastGuess  words.Word
	guesses    int
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers sets how many goroutines share the probe search.
// Values below 1 are treated as 1. The chosen guess does not depend on it.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// New creates a solver over lex. alternate selects the alternate probe list.
func New(lex *words.Lexicon, alternate bool, opts ...Option) *Solver {
	s := &Solver{
		lexicon:    lex,
		alternate:  alternate,
		workers:    runtime.GOMAXPROCS(0),
		candidates: lex.Answers(),
		probes:     lex.Probes(alternate),
		startWord:  words.MustParse(DefaultStartWord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithStartWord replaces the opening guess. The word must have 5 letters and
// be in the solver's probe list; otherwise a validation error is returned.
func (s *Solver) WithStartWord(word string) (*Solver, error) {
	w, err := s.lexicon.Lookup(word, false, s.alternate)
	if err != nil {
		return nil, fmt.Errorf("start word: %w", err)
	}
	s.startWord = w
	return s, nil
}

// Guess returns the next word to play and removes it from the probe set.
//
// Panics with *InvariantError when called after the first guess with no
// candidates or no probes left: the clue history contradicts itself.
// Use Exhausted to check first.
func (s *Solver) Guess() words.Word {
	var g words.Word
	switch {
	case s.guesses == 0:
		g = s.startWord
		metrics.Guesses.WithLabelValues(metrics.PhaseStart).Inc()
	case len(s.candidates) == 0:
		panic(s.invariant("guess called with no candidate answers left"))
	case len(s.probes) == 0:
		panic(s.invariant("guess called with no probe words left"))
	case len(s.candidates) == 1:
		g = s.candidates[0]
		metrics.Guesses.WithLabelValues(metrics.PhaseConverged).Inc()
	default:
		g = s.search()
		metrics.Guesses.WithLabelValues(metrics.PhaseSearch).Inc()
	}

	s.removeProbe(g)
	s.guesses++
	s.lastGuess = g
	return g
}

// FilterSelf narrows the candidates and probes to the words consistent with v.
// v is normally the clue vector for the most recent guess.
func (s *Solver) FilterSelf(v clue.Vector) {
	s.candidates = filter.InPlace(s.candidates, v)
	s.probes = filter.InPlace(s.probes, v)
}

// removeProbe drops w from the probe set, keeping order.
func (s *Solver) removeProbe(w words.Word) {
	out := s.probes[:0]
	for _, p := range s.probes {
		if p != w {
			out = append(out, p)
		}
	}
	s.probes = out
}

// Remaining returns the number of candidate answers left.
func (s *Solver) Remaining() int { return len(s.candidates) }

// GuessCount returns how many guesses have been returned.
func (s *Solver) GuessCount() int { return s.guesses }

// ProbeCount returns the number of unused probe words left.
func (s *Solver) ProbeCount() int { return len(s.probes) }

// Candidates returns a copy of the remaining candidate answers.
func (s *Solver) Candidates() []words.Word {
	return append([]words.Word(nil), s.candidates...)
}

// StartWord returns the configured opening guess.
func (s *Solver) StartWord() words.Word { return s.startWord }

// LastGuess returns the most recent guess, if any.
func (s *Solver) LastGuess() (words.Word, bool) {
	return s.lastGuess, s.guesses > 0
}

// Alternate reports whether the solver uses the alternate probe list.
func (s *Solver) Alternate() bool { return s.alternate }

// Exhausted reports whether Guess would panic: a guess has been made and the
// clues so far left no candidates or no probes.
func (s *Solver) Exhausted() bool {
	return s.guesses > 0 && (len(s.candidates) == 0 || len(s.probes) == 0)
}

// InvariantError is the panic value for a Guess call on exhausted state.
type InvariantError struct {
	Reason     string
	Guesses    int
	Candidates []words.Word
	Probes     []words.Word
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("solver: %s (after %d guesses); candidates: [%s]; probes: [%s]",
		e.Reason, e.Guesses,
		strings.Join(words.Strings(e.Candidates), " "),
		strings.Join(words.Strings(e.Probes), " "))
}

func (s *Solver) invariant(reason string) *InvariantError {
	return &InvariantError{
		Reason:     reason,
		Guesses:    s.guesses,
		Candidates: s.Candidates(),
		Probes:     append([]words.Word(nil), s.probes...),
	}
}
