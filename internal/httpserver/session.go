// internal/httpserver/session.go
//
// Solver sessions over HTTP.
//   - POST   /sessions               → create a solver, returns {sessionId, token, startWord}
//   - GET    /sessions/{id}          → state (candidates listed once few remain)
//   - POST   /sessions/{id}/guess    → next guess
//   - POST   /sessions/{id}/feedback → apply a g/y/. pattern for the last guess
//   - DELETE /sessions/{id}          → drop the session
//
// Every /sessions/{id} route requires "Authorization: Bearer <token>", an
// HS256 JWT whose "sid" claim must equal {id}. Tokens expire with the session TTL.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/clue"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// candidateListLimit is the largest candidate set included in state responses.
const candidateListLimit = 50

var (
	errNoGuess       = errors.New("no guess has been made yet")
	errContradictory = errors.New("the feedback so far is contradictory: no consistent words remain")
)

// mountSessions registers the session routes.
func (s *Server) mountSessions() {
	s.r.Post("/sessions", s.handleNewSession)
	s.r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleSessionState)
		r.Post("/guess", s.handleSessionGuess)
		r.Post("/feedback", s.handleSessionFeedback)
		r.Delete("/", s.handleSessionDelete)
	})
}

// newSessionReq/Res payloads for POST /sessions.
type newSessionReq struct {
	StartWord string `json:"startWord"`
	Alternate bool   `json:"alternate"`
}
type newSessionRes struct {
	SessionID string     `json:"sessionId"`
	Token     string     `json:"token"`
	StartWord words.Word `json:"startWord"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// handleNewSession creates a solver and returns a token for it.
// An empty body uses the server's default start word and the standard list.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	start := req.StartWord
	if start == "" {
		start = s.opts.StartWord
	}
	sv, err := solver.New(s.lex, req.Alternate, solver.WithWorkers(s.opts.Workers)).WithStartWord(start)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if n, err := s.sessions.Sweep(r.Context(), s.opts.SessionTTL); err == nil && n > 0 {
		log.Info().Int("removed", n).Msg("swept idle sessions")
	}

	sess := store.NewSession(genID(), sv)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signSessionToken(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("session", sess.ID).Str("startWord", sv.StartWord().String()).Bool("alternate", req.Alternate).Msg("session created")
	writeJSON(w, http.StatusCreated, newSessionRes{SessionID: sess.ID, Token: tok, StartWord: sv.StartWord(), ExpiresAt: exp})
}

// sessionState is the body for GET /sessions/{id} and feedback responses.
type sessionState struct {
	GuessCount int          `json:"guessCount"`
	Remaining  int          `json:"remaining"`
	LastGuess  *words.Word  `json:"lastGuess,omitempty"`
	Solved     bool         `json:"solved"`
	Candidates []words.Word `json:"candidates,omitempty"`
}

func stateOf(sv *solver.Solver, solved bool) sessionState {
	st := sessionState{GuessCount: sv.GuessCount(), Remaining: sv.Remaining(), Solved: solved}
	if g, ok := sv.LastGuess(); ok {
		st.LastGuess = &g
	}
	if sv.Remaining() <= candidateListLimit {
		st.Candidates = sv.Candidates()
	}
	return st
}

// handleSessionState reports the solver's progress.
func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var st sessionState
	_ = sess.Do(func(sv *solver.Solver) error {
		st = stateOf(sv, false)
		return nil
	})
	writeJSON(w, http.StatusOK, st)
}

// guessRes is the body for POST /sessions/{id}/guess.
type guessRes struct {
	Guess      words.Word `json:"guess"`
	GuessCount int        `json:"guessCount"`
	Remaining  int        `json:"remaining"`
}

// handleSessionGuess returns the solver's next guess.
// 409 when the feedback so far leaves nothing to guess.
func (s *Server) handleSessionGuess(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var res guessRes
	err := sess.Do(func(sv *solver.Solver) error {
		if sv.Exhausted() {
			return errContradictory
		}
		res.Guess = sv.Guess()
		res.GuessCount, res.Remaining = sv.GuessCount(), sv.Remaining()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// feedbackReq is the body for POST /sessions/{id}/feedback.
type feedbackReq struct {
	Pattern string `json:"pattern"`
}

// handleSessionFeedback applies the pattern for the last guess.
func (s *Server) handleSessionFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := sessionFrom(r)
	var st sessionState
	err := sess.Do(func(sv *solver.Solver) error {
		last, ok := sv.LastGuess()
		if !ok {
			return errNoGuess
		}
		v, err := clue.ParsePattern(last, req.Pattern)
		if err != nil {
			return err
		}
		if !v.Solved() {
			sv.FilterSelf(v)
		}
		st = stateOf(sv, v.Solved())
		return nil
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, st)
	case isValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusConflict, err.Error())
	}
}

// handleSessionDelete removes the session.
func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = s.sessions.Delete(r.Context(), sess.ID)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ---------------------------- token middleware -----------------------------

// ctxSessionKey is the context key type for storing the resolved session.
type ctxSessionKey struct{}

func sessionFrom(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// requireSession enforces a valid token for the session in the path and
// injects the session into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.opts.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if sid, _ := claims["sid"].(string); sid == "" || sid != id {
			writeError(w, http.StatusForbidden, "token does not match session")
			return
		}
		sess, err := s.sessions.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// signSessionToken creates an HS256 JWT for session id expiring after the session TTL.
func (s *Server) signSessionToken(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
