package solver

import (
	"errors"
	"fmt"
)

// ErrTurnLimit is returned by Solve when the secret is not found within
// Policy.MaxTurns guesses.
var ErrTurnLimit = errors.New("turn limit reached")

// Policy controls how Solve picks guesses.
type Policy struct {
	FirstGuess string // opening guess; empty means rank the opening too
	Threshold  int    // GuessPool threshold
	MaxTurns   int    // 0 means 10
}

// Result summarizes a finished Solve.
type Result struct {
	Secret  string `json:"secret"`
	Answer  string `json:"answer,omitempty"`
	Status  Status `json:"status"`
	Turns   []Turn `json:"turns"`
	Guesses int    `json:"guesses"` // including the final winning guess
}

// Solve plays s to completion against its secret, greedily taking the top
// ranked guess each turn. When the candidates narrow to one word that has
// not been guessed yet, the closing guess is counted in Result.Guesses.
func Solve(s *Session, r *Ranker, p Policy) (Result, error) {
	if p.MaxTurns <= 0 {
		p.MaxTurns = 10
	}
	res := Result{Secret: s.Secret}

	for turn := 0; !s.Finished(); turn++ {
		if turn >= p.MaxTurns {
			res.Status, res.Turns = s.Status, s.History
			res.Guesses = len(s.History)
			return res, fmt.Errorf("%s after %d guesses: %w", s.Secret, turn, ErrTurnLimit)
		}

		guess := p.FirstGuess
		if turn > 0 || guess == "" {
			top := s.Suggest(r, p.Threshold, 1)
			if len(top) == 0 {
				break
			}
			guess = top[0].Guess
		}

		if _, _, err := s.Guess(guess); err != nil && !errors.Is(err, ErrContradiction) {
			return res, err
		}
	}

	res.Status, res.Turns = s.Status, s.History
	res.Guesses = len(s.History)
	if answer, ok := s.Answer(); ok {
		res.Answer = answer
		if last := s.History[len(s.History)-1]; last.Guess != answer {
			res.Guesses++
		}
	}
	if s.Status == StatusContradiction {
		return res, ErrContradiction
	}
	return res, nil
}
