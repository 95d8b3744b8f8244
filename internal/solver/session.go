// internal/solver/session.go
//
// A solving session: the candidate set plus the observations that shaped it.
//
// Lifecycle:
//   - Starts with every allowed word as a candidate. AnswersOnly narrows
//     the start to the answer list.
//   - Each Apply filters the candidates against one (guess, feedback) pair;
//     the old candidate slice is replaced, never edited in place.
//   - One candidate left → solved; none left → contradiction. Both are final.
//
// A Session is not safe for concurrent use; the HTTP layer serializes access
// through the session store.

package solver

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/words"
)

// Status is the coarse state of a session.
type Status string

const (
	StatusPlaying       Status = "playing"
	StatusSolved        Status = "solved"
	StatusContradiction Status = "contradiction"
)

// Turn records one observation and the candidate count it left behind.
type Turn struct {
	Guess     string        `json:"guess"`
	Code      feedback.Code `json:"-"`
	Feedback  string        `json:"feedback"`
	Remaining int           `json:"remaining"`
}

// Session holds the state of one solve.
type Session struct {
	ID         string
	Owner      string // user or anonymous id, set by the caller
	Secret     string // known only when the program plays against itself
	Candidates []string
	History    []Turn
	Status     Status
	StartedAt  time.Time

	lists *words.Lists
	cache *feedback.Cache
}

// SessionOption configures a new Session.
type SessionOption func(*Session)

// AnswersOnly starts the candidate set from lists.Answers instead of
// lists.Allowed when on is true. Secrets outside the answer list then end
// in a contradiction.
func AnswersOnly(on bool) SessionOption {
	return func(s *Session) {
		if on {
			s.Candidates = s.lists.Answers
		}
	}
}

// StartedAt overrides the session's start time (default time.Now).
func StartedAt(t time.Time) SessionOption {
	return func(s *Session) { s.StartedAt = t.UTC() }
}

// NewSession starts a session whose candidates are all of lists.Allowed.
func NewSession(lists *words.Lists, cache *feedback.Cache, opts ...SessionOption) *Session {
	if cache == nil {
		cache = feedback.NewCache()
	}
	s := &Session{
		ID:         uuid.NewString(),
		Candidates: lists.Allowed,
		Status:     StatusPlaying,
		StartedAt:  time.Now().UTC(),
		lists:      lists,
		cache:      cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionWithSecret starts a session that can score its own guesses
// against secret via Guess.
func NewSessionWithSecret(lists *words.Lists, cache *feedback.Cache, secret string, opts ...SessionOption) (*Session, error) {
	secret, err := words.Normalize(secret)
	if err != nil {
		return nil, err
	}
	s := NewSession(lists, cache, opts...)
	s.Secret = secret
	return s, nil
}

// Apply filters the candidates with an observed (guess, code) pair and
// returns the resulting status. A contradiction is reported both as
// StatusContradiction and as ErrContradiction.
func (s *Session) Apply(guess string, code feedback.Code) (Status, error) {
	if s.Finished() {
		return s.Status, ErrFinished
	}
	guess, err := words.Normalize(guess)
	if err != nil {
		return s.Status, fmt.Errorf("%w: %w", ErrUnknownGuess, err)
	}
	if !s.lists.IsAllowed(guess) {
		return s.Status, fmt.Errorf("%q: %w", guess, ErrUnknownGuess)
	}

	s.Candidates = Filter(s.cache, s.Candidates, guess, code)
	s.History = append(s.History, Turn{
		Guess:     guess,
		Code:      code,
		Feedback:  code.String(),
		Remaining: len(s.Candidates),
	})

	switch len(s.Candidates) {
	case 0:
		s.Status = StatusContradiction
		sessionOutcomes.WithLabelValues(string(s.Status)).Inc()
		return s.Status, ErrContradiction
	case 1:
		s.Status = StatusSolved
		sessionOutcomes.WithLabelValues(string(s.Status)).Inc()
	}
	return s.Status, nil
}

// Guess scores guess against the session's secret and applies the result.
// It is only valid for sessions created with NewSessionWithSecret.
func (s *Session) Guess(guess string) (feedback.Code, Status, error) {
	if s.Secret == "" {
		return 0, s.Status, fmt.Errorf("session %s has no secret", s.ID)
	}
	guess, err := words.Normalize(guess)
	if err != nil {
		return 0, s.Status, fmt.Errorf("%w: %w", ErrUnknownGuess, err)
	}
	code := s.cache.Feedback(guess, s.Secret)
	status, err := s.Apply(guess, code)
	return code, status, err
}

// Suggest ranks the guess pool chosen by GuessPool and returns the top k.
func (s *Session) Suggest(r *Ranker, threshold, k int) []GuessScore {
	if s.Finished() {
		return nil
	}
	pool := GuessPool(s.lists.Allowed, s.Candidates, threshold)
	return Top(r.Rank(pool, s.Candidates), k)
}

// Answer returns the sole remaining candidate of a solved session.
func (s *Session) Answer() (string, bool) {
	if s.Status != StatusSolved {
		return "", false
	}
	return s.Candidates[0], true
}

// Remaining returns the current candidate count.
func (s *Session) Remaining() int { return len(s.Candidates) }

// Finished reports whether the session reached a final status.
func (s *Session) Finished() bool { return s.Status != StatusPlaying }
