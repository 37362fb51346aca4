// internal/game/types.go
//
// Core type definitions for the setter side of a game.
// Defines:
//   - State:      playing / won / lost.
//   - Game:       one secret word and the guesses scored against it.
//   - Turn:       one guess with its clue vector.
//   - Transcript: the turns of an automatically played game.

package game

import (
	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// State is the coarse state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single game session.
type Game struct {
	ID       string       // Unique game identifier (random hex string).
	Answer   words.Word   // The secret word.
	Rows     int          // Maximum number of guesses allowed (typically 6).
	Guesses  []words.Word // Guesses made so far.
	Finished bool         // True once the game is over (won or lost).
	Won      bool         // True if the game was finished with a win.
}

// Turn is one guess and the feedback it received.
type Turn struct {
	Guess words.Word  `json:"guess"`
	Clues clue.Vector `json:"clues"`
}

// Transcript is the ordered list of turns in a played game.
type Transcript []Turn

// Rounds returns the number of guesses played.
func (t Transcript) Rounds() int { return len(t) }

// Solved reports whether the last turn was all Right.
func (t Transcript) Solved() bool {
	return len(t) > 0 && t[len(t)-1].Clues.Solved()
}
