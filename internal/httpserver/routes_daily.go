// internal/httpserver/routes_daily.go
//
// Daily solve: GET /daily[?date=YYYY-MM-DD]
// Picks the date's deterministic answer (date + salt), lets a fresh solver
// play it, and returns the full transcript.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/stats"
)

// dailyTurn is one row of the daily transcript.
type dailyTurn struct {
	game.Turn
	Pattern string `json:"pattern"`
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date   string      `json:"date"`
	Rounds int         `json:"rounds"`
	Solved bool        `json:"solved"`
	Turns  []dailyTurn `json:"turns"`
}

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

// handleDaily solves the daily word for ?date (default today, UTC).
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date, err := daily.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	answer := daily.Answer(date, s.opts.DailySalt, s.lex)

	sv, err := solver.New(s.lex, false, solver.WithWorkers(s.opts.Workers)).WithStartWord(s.opts.StartWord)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	t, err := game.Play(sv, answer, stats.DefaultMaxRounds)
	if err != nil {
		log.Warn().Err(err).Str("date", daily.DateKey(date)).Msg("daily solve")
	}

	res := dailyRes{Date: daily.DateKey(date), Rounds: t.Rounds(), Solved: t.Solved()}
	for _, turn := range t {
		res.Turns = append(res.Turns, dailyTurn{Turn: turn, Pattern: turn.Clues.Pattern()})
	}
	writeJSON(w, http.StatusOK, res)
}
