package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/filter"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func embedded(t *testing.T) *words.Lexicon {
	t.Helper()
	lex, err := words.Embedded()
	require.NoError(t, err)
	return lex
}

// play runs the solver against secret and returns the guesses made.
func play(t *testing.T, s *Solver, secret string, maxRounds int) []string {
	t.Helper()
	answer := words.MustParse(secret)
	var guesses []string
	for len(guesses) < maxRounds {
		before := s.Remaining()
		g := s.Guess()
		guesses = append(guesses, g.String())
		v := clue.Check(answer, g)
		if v.Solved() {
			return guesses
		}
		s.FilterSelf(v)
		require.LessOrEqual(t, s.Remaining(), before)
		require.Contains(t, s.Candidates(), answer)
	}
	t.Fatalf("%s not solved in %d guesses: %v", secret, maxRounds, guesses)
	return nil
}

func TestFirstGuessIsStartWord(t *testing.T) {
	s := New(embedded(t), false)
	assert.Equal(t, DefaultStartWord, s.StartWord().String())
	_, ok := s.LastGuess()
	assert.False(t, ok)

	probes := s.ProbeCount()
	assert.Equal(t, "tares", s.Guess().String())
	assert.Equal(t, 1, s.GuessCount())
	assert.Equal(t, probes-1, s.ProbeCount())
	last, ok := s.LastGuess()
	assert.True(t, ok)
	assert.Equal(t, "tares", last.String())
}

func TestWithStartWord(t *testing.T) {
	lex := embedded(t)

	s, err := New(lex, false).WithStartWord("CRANE")
	require.NoError(t, err)
	assert.Equal(t, "crane", s.Guess().String())

	_, err = New(lex, false).WithStartWord("cranes")
	assert.ErrorIs(t, err, words.ErrLength)
	_, err = New(lex, false).WithStartWord("xxxxx")
	assert.ErrorIs(t, err, words.ErrUnknownWord)
	_, err = New(lex, false).WithStartWord("cr@ne")
	assert.ErrorIs(t, err, words.ErrNotLetters)
}

func TestSolveCrane(t *testing.T) {
	s := New(embedded(t), false)
	guesses := play(t, s, "crane", 6)
	assert.Equal(t, []string{"tares", "beard", "crave", "crane"}, guesses)
	assert.Equal(t, 4, s.GuessCount())
}

func TestSolveCrook(t *testing.T) {
	s := New(embedded(t), false, WithWorkers(2))
	guesses := play(t, s, "crook", 6)
	assert.Equal(t, []string{"tares", "grind", "crook"}, guesses)
}

func TestSolveNeverRepeats(t *testing.T) {
	lex := embedded(t)
	for _, secret := range []string{"abbey", "mamma", "vivid", "eerie", "shake", "jazzy"} {
		t.Run(secret, func(t *testing.T) {
			guesses := play(t, New(lex, false), secret, 8)
			seen := map[string]bool{}
			for _, g := range guesses {
				assert.False(t, seen[g], "repeated %s in %v", g, guesses)
				seen[g] = true
			}
		})
	}
}

func TestSolveAlternate(t *testing.T) {
	lex := embedded(t)
	s := New(lex, true)
	assert.True(t, s.Alternate())
	_, _, alt := lex.Stats()
	assert.Equal(t, alt, s.ProbeCount())
	play(t, s, "crane", 8)
}

func TestConvergedReturnsSoleCandidate(t *testing.T) {
	lex, err := words.New([]string{"crane", "crate"}, []string{"tares"}, nil)
	require.NoError(t, err)
	s := New(lex, false)

	g := s.Guess()
	require.Equal(t, "tares", g.String())
	s.FilterSelf(clue.Check(words.MustParse("crane"), g))
	require.Equal(t, 1, s.Remaining())
	assert.Equal(t, "crane", s.Guess().String())
	assert.Equal(t, 2, s.GuessCount())
}

func TestGuessPanicsWhenExhausted(t *testing.T) {
	s := New(embedded(t), false)
	g := s.Guess()
	// "tares" is not an answer, so an all-Right clue leaves nothing
	v := clue.Check(g, g)
	s.FilterSelf(v)
	require.True(t, s.Exhausted())

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ie, ok := r.(*InvariantError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, 1, ie.Guesses)
		assert.Empty(t, ie.Candidates)
		assert.Contains(t, ie.Error(), "no candidate answers")
	}()
	s.Guess()
}

func TestSearchMatchesNaiveScore(t *testing.T) {
	lex := embedded(t)
	candidates := lex.Answers()[:60]
	probes := lex.Probes(false)[:200]

	// naive reference: full filter per candidate, strict max keeps the first
	bestIdx, bestScore := -1, -1
	for i, p := range probes {
		score := 0
		for _, a := range candidates {
			if d := len(candidates) - len(filter.Filter(candidates, clue.Check(a, p))); d > 0 {
				score += d
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}

	for _, workers := range []int{1, 2, 3, 7, 16, 500} {
		got := bestProbe(candidates, probes, workers)
		assert.Equal(t, pick{index: bestIdx, score: bestScore}, got, "workers=%d", workers)
	}
}

func TestSearchTieBreakLowestIndex(t *testing.T) {
	candidates := []words.Word{words.MustParse("crane"), words.MustParse("crate")}
	// identical probes score identically; the earliest must win
	probes := []words.Word{words.MustParse("nnnnn"), words.MustParse("ttttt"), words.MustParse("nnnnn")}
	for _, workers := range []int{1, 2, 3} {
		got := bestProbe(candidates, probes, workers)
		assert.Equal(t, 0, got.index, "workers=%d", workers)
		assert.Equal(t, 2, got.score)
	}
}

func TestWorkersDoNotChangeGuesses(t *testing.T) {
	lex := embedded(t)
	for _, secret := range []string{"crane", "abbey"} {
		one := play(t, New(lex, false, WithWorkers(1)), secret, 8)
		many := play(t, New(lex, false, WithWorkers(6)), secret, 8)
		assert.Equal(t, one, many, secret)
	}
}

func TestWithWorkersClamps(t *testing.T) {
	s := New(embedded(t), false, WithWorkers(-3))
	assert.Equal(t, 1, s.workers)
}
