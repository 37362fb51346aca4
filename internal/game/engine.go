// internal/game/engine.go
//
// Setter side of a game, and the loop that lets a solver play it.
// Responsibilities:
//   - Create games with a fixed secret and a round limit (6 by default).
//   - Score guesses with clue.Check and track playing → won/lost.
//   - Play: drive a solver against a game until the clue is all Right.
//
// Notes:
//   - Guesses are not checked against a word list here; the solver only
//     proposes lexicon words and callers validate user input themselves.
//   - randomID() is a compact hex identifier for correlating logs.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultRows is the number of guesses a standard game allows.
const DefaultRows = 6

var (
	// ErrFinished is returned when guessing in a game that is already over.
	ErrFinished = errors.New("game finished")
	// ErrRoundLimit is returned by Play when the solver did not finish in time.
	ErrRoundLimit = errors.New("round limit reached")
)

// New constructs a game for answer with the default number of rows.
func New(answer words.Word) *Game {
	return NewWithRows(answer, DefaultRows)
}

// NewWithRows constructs a game allowing rows guesses.
func NewWithRows(answer words.Word, rows int) *Game {
	return &Game{
		ID:      randomID(),
		Answer:  answer,
		Rows:    rows,
		Guesses: []words.Word{},
	}
}

// ApplyGuess scores a guess and updates the game state.
//
// State transitions:
//   - If all clues are Right → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess words.Word) (clue.Vector, State, error) {
	if g.Finished {
		return clue.Vector{}, g.State(), ErrFinished
	}
	v := clue.Check(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)

	if v.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return v, g.State(), nil
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Play lets s guess answer until solved or maxRounds guesses have been made.
// The returned transcript holds every turn played, also on error.
func Play(s *solver.Solver, answer words.Word, maxRounds int) (Transcript, error) {
	g := NewWithRows(answer, maxRounds)
	var t Transcript
	for {
		if s.Exhausted() {
			return t, fmt.Errorf("solve %s: no consistent words left after %d guesses", answer, s.GuessCount())
		}
		guess := s.Guess()
		v, state, err := g.ApplyGuess(guess)
		if err != nil {
			return t, err
		}
		t = append(t, Turn{Guess: guess, Clues: v})
		switch state {
		case StateWon:
			return t, nil
		case StateLost:
			return t, fmt.Errorf("solve %s: %w after %d guesses", answer, ErrRoundLimit, maxRounds)
		}
		s.FilterSelf(v)
	}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
