package solver

import "errors"

var (
	// ErrContradiction means no candidate is consistent with every observation
	// so far, usually because a feedback code was entered wrong.
	ErrContradiction = errors.New("no consistent candidate remains")

	// ErrUnknownGuess is returned for guesses that are not in the allowed list.
	ErrUnknownGuess = errors.New("guess not in allowed word list")

	// ErrFinished is returned when a session that is solved or contradicted
	// receives another observation.
	ErrFinished = errors.New("session finished")
)
