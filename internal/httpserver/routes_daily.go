// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
//   - POST /daily/new         → start today's puzzle (creates or reuses a game)
//   - POST /daily/guess       → score a guess against today's secret
//   - GET  /daily/hint        → top-k suggestions for the game; counts as a hint
//   - GET  /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Each player gets one finished result per day (enforced by the DB unique
// key). Games in progress are held in memory; results are persisted on win.
// Every daily game runs a solver session against the secret, so the server
// can report how many answers are still consistent after each guess.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-assist/internal/daily"
	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
	mu    sync.Mutex            // guards games and every dailyGame in it
	games map[string]*dailyGame // keyed by userID|date
}

// dailyGame holds in-memory state for one player's daily puzzle.
type dailyGame struct {
	GameID  string
	UserID  string
	Puzzle  daily.Puzzle
	Start   time.Time
	Guesses int
	Hints   int
	Won     bool
	solve   *solver.Session
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:   s,
		store: daily.NewStore(s.db),
		games: make(map[string]*dailyGame),
	}
	r.Route("/daily", func(r chi.Router) {
		bounded := r.With(chimw.Timeout(handlerTimeout))
		bounded.Post("/new", dd.handleNew)
		bounded.Post("/guess", dd.handleGuess)
		bounded.Get("/leaderboard", dd.handleLeaderboard)
		r.Get("/hint", dd.handleHint)
	})
}

// today returns the puzzle for the current UTC date.
func (d *dailyServer) today() (daily.Puzzle, bool) {
	return daily.For(d.srv.now(), d.srv.cfg.DailySalt, d.srv.lists.Answers)
}

// userID returns the authenticated user ID if logged in, otherwise the
// anonymous cookie ID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// lookup returns the caller's game for today if gameID matches it.
// Callers must hold d.mu.
func (d *dailyServer) lookup(uid, date, gameID string) (*dailyGame, bool) {
	g, ok := d.games[uid+"|"+date]
	if !ok || g.GameID != gameID {
		return nil, false
	}
	return g, true
}

// -----------------------------------------------------------------------------
// /daily/new

type dailyNewRes struct {
	GameID    string `json:"gameId"`
	Date      string `json:"date"`
	Played    bool   `json:"played"`
	Remaining int    `json:"remaining"`
}

// handleNew creates or reuses today's game.
//   - A stored result for today → Played=true and no game.
//   - Otherwise the in-memory game for (user, date) is created or reused.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	p, ok := d.today()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_answers")
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, p.Date); err != nil {
		log.Warn().Err(err).Msg("daily already played")
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: p.Date, Played: true})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	key := uid + "|" + p.Date
	g, ok := d.games[key]
	if !ok {
		sess, err := solver.NewSessionWithSecret(d.srv.lists, d.srv.ranker.Cache(), p.Secret, d.srv.sessionOptions()...)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "bad_secret")
			return
		}
		sess.Owner = uid
		g = &dailyGame{
			GameID: uuid.NewString(),
			UserID: uid,
			Puzzle: p,
			Start:  d.srv.now(),
			solve:  sess,
		}
		d.games[key] = g
	}
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: g.GameID, Date: p.Date, Remaining: g.solve.Remaining()})
}

// -----------------------------------------------------------------------------
// /daily/guess

type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

type dailyGuessRes struct {
	Marks     []string `json:"marks"` // per letter: hit | present | miss
	Feedback  string   `json:"feedback"`
	State     string   `json:"state"` // in_progress | won | locked
	Guesses   int      `json:"guesses"`
	Remaining int      `json:"remaining"`
}

// handleGuess scores a guess for today's game and persists the result on a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)

	var req dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word, err := words.Normalize(req.Word)
	if err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}
	if !d.srv.lists.IsAllowed(word) {
		writeError(w, http.StatusBadRequest, "word_not_allowed")
		return
	}
	p, _ := d.today()

	d.mu.Lock()
	g, ok := d.lookup(uid, p.Date, req.GameID)
	if !ok {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	if g.Won {
		res := dailyGuessRes{Marks: []string{}, State: "locked", Guesses: g.Guesses, Remaining: g.solve.Remaining()}
		d.mu.Unlock()
		writeJSON(w, http.StatusOK, res)
		return
	}

	code := d.srv.ranker.Cache().Feedback(word, p.Secret)
	g.Guesses++
	// Once the solver is down to the secret it stops taking observations;
	// the player still has to type the word.
	if !g.solve.Finished() {
		_, _ = g.solve.Apply(word, code)
	}
	g.Won = code == feedback.AllHit
	res := dailyGuessRes{
		Marks:     markNames(code),
		Feedback:  code.String(),
		State:     "in_progress",
		Guesses:   g.Guesses,
		Remaining: g.solve.Remaining(),
	}
	result := daily.Result{
		UserID:    uid,
		Date:      p.Date,
		WordIndex: p.Index,
		Guesses:   g.Guesses,
		Hints:     g.Hints,
		ElapsedMs: int(d.srv.now().Sub(g.Start).Milliseconds()),
	}
	won := g.Won
	d.mu.Unlock()

	if won {
		res.State = "won"
		if err := d.store.InsertResult(r.Context(), result); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /daily/hint

type dailyHintRes struct {
	Remaining   int                 `json:"remaining"`
	Hints       int                 `json:"hints"`
	Suggestions []solver.GuessScore `json:"suggestions"`
}

// handleHint returns the best next guesses and counts the request against
// the player's leaderboard entry.
func (d *dailyServer) handleHint(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	p, _ := d.today()

	d.mu.Lock()
	g, ok := d.lookup(uid, p.Date, r.URL.Query().Get("gameId"))
	if !ok {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	candidates := g.solve.Candidates
	if !g.Won {
		g.Hints++
	}
	res := dailyHintRes{Remaining: len(candidates), Hints: g.Hints, Suggestions: []solver.GuessScore{}}
	won := g.Won
	d.mu.Unlock()

	if !won {
		res.Suggestions = d.srv.suggest(candidates, d.srv.cfg.TopK)
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.srv.now())
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
