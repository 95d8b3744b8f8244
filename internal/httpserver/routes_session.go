// internal/httpserver/routes_session.go
//
// Assist sessions: the client plays Wordle somewhere else and reports each
// guess with the colors it got back; the server narrows the candidates and
// suggests what to try next.
//
//   - POST /session/new      → {sessionId, remaining, firstGuess}
//   - POST /session/guess    → apply {guess, feedback}; returns state + remaining
//   - GET  /session/suggest  → top-k guesses by expected information
//
// A contradiction is a normal outcome (200, state "contradiction"); bad
// input is a 400 and an unknown session a 404.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/store"
)

// mountSessions registers the /session routes. Suggest ranks and is left
// without the handler timeout.
func (s *Server) mountSessions(r chi.Router) {
	bounded := r.With(chimw.Timeout(handlerTimeout))
	bounded.Post("/session/new", s.handleNewSession)
	bounded.Post("/session/guess", s.handleSessionGuess)
	r.Get("/session/suggest", s.handleSuggest)
}

type newSessionRes struct {
	SessionID  string `json:"sessionId"`
	Remaining  int    `json:"remaining"`
	FirstGuess string `json:"firstGuess"`
}

// handleNewSession creates a session over the allowed-word list (or the
// answer list with answers_only) and records an owner row for history.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := solver.NewSession(s.lists, s.ranker.Cache(), s.sessionOptions()...)
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me != nil {
		sess.Owner = me.ID
	} else {
		sess.Owner = s.ensureAnonID(w, r)
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.insertSessionRow(r, sess, me)

	writeJSON(w, http.StatusOK, newSessionRes{
		SessionID:  sess.ID,
		Remaining:  sess.Remaining(),
		FirstGuess: s.cfg.FirstGuess,
	})
}

type sessionGuessReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Feedback  string `json:"feedback"` // e.g. "BYGBB"
}

type sessionGuessRes struct {
	Remaining int           `json:"remaining"`
	State     solver.Status `json:"state"`
	Answer    string        `json:"answer,omitempty"`
	History   []solver.Turn `json:"history"`
}

// handleSessionGuess applies one observation to a session.
func (s *Server) handleSessionGuess(w http.ResponseWriter, r *http.Request) {
	var req sessionGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	code, err := feedback.Parse(req.Feedback)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed_feedback")
		return
	}

	var res sessionGuessRes
	err = s.store.Update(r.Context(), req.SessionID, func(sess *solver.Session) error {
		status, err := sess.Apply(req.Guess, code)
		if err != nil && !errors.Is(err, solver.ErrContradiction) {
			return err
		}
		res.State = status
		res.Remaining = sess.Remaining()
		res.Answer, _ = sess.Answer()
		res.History = append([]solver.Turn(nil), sess.History...)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, solver.ErrUnknownGuess):
		writeError(w, http.StatusBadRequest, "unknown_guess")
		return
	case errors.Is(err, solver.ErrFinished):
		writeError(w, http.StatusConflict, "finished")
		return
	case err != nil:
		log.Error().Err(err).Str("sessionId", req.SessionID).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "apply_failed")
		return
	}

	s.recordGuess(req.SessionID, res.State, res.Answer)
	writeJSON(w, http.StatusOK, res)
}

type suggestRes struct {
	Remaining   int                 `json:"remaining"`
	State       solver.Status       `json:"state"`
	Suggestions []solver.GuessScore `json:"suggestions"`
}

// handleSuggest ranks the session's guess pool. Ranking runs outside the
// store lock on the candidate slice captured inside it; sessions replace
// that slice on every Apply and never write into it.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("sessionId")
	k := s.cfg.TopK
	if v := r.URL.Query().Get("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_k")
			return
		}
		k = n
	}

	var (
		candidates []string
		state      solver.Status
	)
	err := s.store.Update(r.Context(), id, func(sess *solver.Session) error {
		candidates = sess.Candidates
		state = sess.Status
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	res := suggestRes{Remaining: len(candidates), State: state, Suggestions: []solver.GuessScore{}}
	if state == solver.StatusPlaying {
		res.Suggestions = s.suggest(candidates, k)
	}
	writeJSON(w, http.StatusOK, res)
}

// sessionOptions applies the server clock and the answers_only setting.
func (s *Server) sessionOptions() []solver.SessionOption {
	return []solver.SessionOption{
		solver.StartedAt(s.now()),
		solver.AnswersOnly(s.cfg.AnswersOnly),
	}
}

// suggest ranks the pool for candidates and keeps the best k.
func (s *Server) suggest(candidates []string, k int) []solver.GuessScore {
	pool := solver.GuessPool(s.lists.Allowed, candidates, s.cfg.PoolThreshold)
	return solver.Top(s.ranker.Rank(pool, candidates), k)
}

// ------------------------------ persistence --------------------------------

// insertSessionRow writes the owner row for a new session (best effort).
func (s *Server) insertSessionRow(r *http.Request, sess *solver.Session, me *authUser) {
	if s.db == nil {
		return
	}
	now := sess.StartedAt.Format(time.RFC3339)
	var err error
	if me != nil {
		_, err = s.db.ExecContext(r.Context(),
			`INSERT INTO sessions (id, user_id, status, guesses, started_at) VALUES (?,?,?,0,?)`,
			sess.ID, me.ID, string(sess.Status), now)
	} else {
		_, err = s.db.ExecContext(r.Context(),
			`INSERT INTO sessions (id, anonymous_id, status, guesses, started_at) VALUES (?,?,?,0,?)`,
			sess.ID, sess.Owner, string(sess.Status), now)
	}
	if err != nil {
		log.Warn().Err(err).Str("sessionId", sess.ID).Msg("insert session row")
	}
}

// recordGuess bumps the guess counter and, when the session just finished,
// stores the outcome and the owner's stats in one transaction (best effort).
// The owner is read from the row, which follows guest sessions claimed at
// signup or login.
func (s *Server) recordGuess(id string, state solver.Status, answer string) {
	if s.db == nil {
		return
	}
	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE sessions SET guesses = guesses + 1 WHERE id=?`, id); err != nil {
		log.Warn().Err(err).Msg("update guesses")
	}
	if state != solver.StatusPlaying {
		if _, err := tx.Exec(`UPDATE sessions SET status=?, answer=?, finished_at=? WHERE id=?`,
			string(state), answer, s.now().UTC().Format(time.RFC3339), id); err != nil {
			log.Warn().Err(err).Msg("finish session")
		}
		var owner string
		err := tx.QueryRow(`SELECT COALESCE(user_id, '') FROM sessions WHERE id=?`, id).Scan(&owner)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("sessionId", id).Msg("session owner")
		case owner != "":
			if err := bumpStats(tx, owner, state); err != nil {
				log.Warn().Err(err).Str("user", owner).Msg("bump stats")
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit session row")
	}
}
