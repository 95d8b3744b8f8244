package solver

import (
	"math"

	"github.com/robalobadob/wordle-assist/internal/feedback"
)

// Entropy returns the expected information, in bits, that guess yields
// against candidates: the Shannon entropy of the distribution of feedback
// codes it would produce. An empty candidate set scores 0.
func Entropy(src feedback.Source, guess string, candidates []string) float64 {
	n := len(candidates)
	if n == 0 {
		return 0
	}

	var buckets [feedback.NumCodes]int
	for _, secret := range candidates {
		buckets[src.Feedback(guess, secret)]++
	}

	total := float64(n)
	var h float64
	for _, count := range buckets {
		if count == 0 || count == n {
			continue
		}
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}
