package solver

import "github.com/robalobadob/wordle-assist/internal/feedback"

// Filter returns the candidates that would have produced observed for guess,
// in their original order. The input slice is never modified.
func Filter(c *feedback.Cache, candidates []string, guess string, observed feedback.Code) []string {
	out := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if c.Feedback(guess, w) == observed {
			out = append(out, w)
		}
	}
	return out
}
