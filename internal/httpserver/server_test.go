package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/results"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newTestServer(t *testing.T, res *results.Store) *Server {
	t.Helper()
	lex, err := words.Embedded()
	require.NoError(t, err)
	return New(lex, store.NewMemoryStore(), res, Options{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
		DailySalt:  "salt",
		Workers:    2,
	})
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words", "", nil)
	assert.JSONEq(t, `{"answers":2311,"probes":2493,"altProbes":2341}`, rec.Body.String())

	rec = do(t, s, http.MethodOptions, "/check", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCheck(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/check", "", checkReq{Secret: "maybe", Guess: "CABLE"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res checkRes
	decode(t, rec, &res)
	assert.Equal(t, ".gy.g", res.Pattern)
	assert.False(t, res.Solved)
	assert.Equal(t, clue.Right, res.Clues[1].Kind)
	assert.Equal(t, byte('a'), res.Clues[1].Letter)

	rec = do(t, s, http.MethodPost, "/check", "", checkReq{Secret: "maybe", Guess: "qqqqq"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/check", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newSession(t *testing.T, s *Server, body any) newSessionRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/sessions", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res newSessionRes
	decode(t, rec, &res)
	require.NotEmpty(t, res.Token)
	require.Len(t, res.SessionID, 22)
	return res
}

func TestSessionSolvesCrane(t *testing.T) {
	s := newTestServer(t, nil)
	sess := newSession(t, s, nil)
	assert.Equal(t, "tares", sess.StartWord.String())
	base := "/sessions/" + sess.SessionID

	// feedback before any guess
	rec := do(t, s, http.MethodPost, base+"/feedback", sess.Token, feedbackReq{Pattern: "....."})
	assert.Equal(t, http.StatusConflict, rec.Code)

	answer := words.MustParse("crane")
	var guesses []string
	for round := 1; round <= 6; round++ {
		rec = do(t, s, http.MethodPost, base+"/guess", sess.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var g guessRes
		decode(t, rec, &g)
		assert.Equal(t, round, g.GuessCount)
		guesses = append(guesses, g.Guess.String())

		rec = do(t, s, http.MethodPost, base+"/feedback", sess.Token,
			feedbackReq{Pattern: clue.Check(answer, g.Guess).Pattern()})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var st sessionState
		decode(t, rec, &st)
		if st.Solved {
			break
		}
		if st.Remaining <= candidateListLimit {
			assert.Contains(t, st.Candidates, answer)
		}
	}
	assert.Equal(t, []string{"tares", "beard", "crave", "crane"}, guesses)

	rec = do(t, s, http.MethodGet, base, sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st sessionState
	decode(t, rec, &st)
	assert.Equal(t, 4, st.GuessCount)
	require.NotNil(t, st.LastGuess)
	assert.Equal(t, "crane", st.LastGuess.String())

	rec = do(t, s, http.MethodDelete, base, sess.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodGet, base, sess.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionFeedbackValidation(t *testing.T) {
	s := newTestServer(t, nil)
	sess := newSession(t, s, newSessionReq{StartWord: "crane"})
	base := "/sessions/" + sess.SessionID

	rec := do(t, s, http.MethodPost, base+"/guess", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, base+"/feedback", sess.Token, feedbackReq{Pattern: "gg"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// contradictory feedback for the same guess leaves nothing to play
	rec = do(t, s, http.MethodPost, base+"/feedback", sess.Token, feedbackReq{Pattern: "gggg."})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, base+"/feedback", sess.Token, feedbackReq{Pattern: "....."})
	require.Equal(t, http.StatusOK, rec.Code)
	var st sessionState
	decode(t, rec, &st)
	assert.Zero(t, st.Remaining)

	rec = do(t, s, http.MethodPost, base+"/guess", sess.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSessionBadStartWord(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/sessions", "", newSessionReq{StartWord: "qqqqq"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionAuth(t *testing.T) {
	s := newTestServer(t, nil)
	a := newSession(t, s, nil)
	b := newSession(t, s, nil)

	rec := do(t, s, http.MethodGet, "/sessions/"+a.SessionID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/sessions/"+a.SessionID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/sessions/"+a.SessionID, b.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	other := New(s.lex, store.NewMemoryStore(), nil, Options{JWTSecret: "other"})
	tok, _, err := other.signSessionToken(a.SessionID)
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/sessions/"+a.SessionID, tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, _, err = s.signSessionToken("missing")
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/sessions/missing", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDaily(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/daily?date=2025-01-02", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res dailyRes
	decode(t, rec, &res)
	assert.Equal(t, "2025-01-02", res.Date)
	assert.True(t, res.Solved)
	assert.Equal(t, res.Rounds, len(res.Turns))
	assert.Equal(t, "tares", res.Turns[0].Guess.String())
	assert.Equal(t, "ggggg", res.Turns[len(res.Turns)-1].Pattern)

	again := do(t, s, http.MethodGet, "/daily?date=2025-01-02", "", nil)
	assert.JSONEq(t, rec.Body.String(), again.Body.String())

	rec = do(t, s, http.MethodGet, "/daily?date=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuns(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/stats/runs", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	res, err := results.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer res.Close()

	rec = do(t, newTestServer(t, res), http.MethodGet, "/stats/runs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"runs":[]}`, rec.Body.String())
}

func TestRunsOversizedLimit(t *testing.T) {
	res, err := results.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer res.Close()

	rec := do(t, newTestServer(t, res), http.MethodGet, "/stats/runs?limit=900000000000000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"runs":[]}`, rec.Body.String())
}
