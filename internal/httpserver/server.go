// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, panic recovery, request IDs, access log),
//     plus a handler timeout on every route that does not rank.
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words", POST /feedback.
//   - Assist sessions (optional auth): /session/new, /session/guess, /session/suggest.
//   - Daily puzzle (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /sessions/mine.
//
// Notes:
//   - Sessions live in the store; the database only keeps a summary row per
//     session for history and stats, written best effort.
//   - Ranking runs outside the store lock on a snapshot of the candidates.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-assist/internal/config"
	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/store"
	"github.com/robalobadob/wordle-assist/internal/words"
)

// handlerTimeout bounds the routes whose work follows the request context.
// The ranking routes (/session/suggest, /daily/hint) go without it since a
// started ranking batch is never cancelled.
const handlerTimeout = 30 * time.Second

// Server bundles the router and everything the handlers need.
type Server struct {
	r      *chi.Mux
	cfg    config.Config
	lists  *words.Lists
	ranker *solver.Ranker
	store  store.Store
	db     *sql.DB
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, lists *words.Lists, ranker *solver.Ranker, st store.Store, db *sql.DB) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		lists:  lists,
		ranker: ranker,
		store:  st,
		db:     db,
		now:    time.Now,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-assist",
			"endpoints": []string{
				"/health", "/metrics", "POST /feedback",
				"POST /session/new", "POST /session/guess", "GET /session/suggest",
				"/daily/*", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.lists.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"answers": a,
			"allowed": g,
			"cache":   s.ranker.Cache().Stats(),
		})
	})
	s.r.Post("/feedback", s.handleFeedback)

	s.mountSessions(s.r.With(s.withOptionalAuth()))
	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Str("request_id", chimw.GetReqID(r.Context())).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// markNames converts a code to per-letter "hit"/"present"/"miss" names.
func markNames(c feedback.Code) []string {
	marks := c.Marks()
	out := make([]string, len(marks))
	for i, m := range marks {
		out[i] = m.Name()
	}
	return out
}

// ------------------------------ feedback -----------------------------------

type feedbackReq struct {
	Guess  string `json:"guess"`
	Secret string `json:"secret"`
}

type feedbackRes struct {
	Code  string   `json:"code"`
	Marks []string `json:"marks"`
}

// handleFeedback computes the code for an arbitrary (guess, secret) pair.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess, err := words.Normalize(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}
	secret, err := words.Normalize(req.Secret)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_secret")
		return
	}
	code := s.ranker.Cache().Feedback(guess, secret)
	writeJSON(w, http.StatusOK, feedbackRes{Code: code.String(), Marks: markNames(code)})
}
