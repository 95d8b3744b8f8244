// internal/feedback/engine.go
//
// Scores a guess against a (real or hypothetical) secret.
//
// Compute implements the standard two-pass algorithm:
//   Pass 1: mark exact matches as hits and count the remaining secret letters.
//   Pass 2: for each non-hit guess letter, left to right, mark present while
//           unconsumed copies of that letter remain in the secret.
//
// Hits always take priority over presents, and a repeated guess letter is
// marked present at most as many times as it is left over in the secret.

package feedback

// Compute returns the feedback code a player would see for guess when the
// secret is secret. Words of the wrong length score as all misses.
func Compute(guess, secret string) Code {
	var marks [Length]Mark
	if len(guess) != Length || len(secret) != Length {
		return FromMarks(marks)
	}

	// Letter counts for the non-hit secret positions.
	var counts [256]uint8

	for i := 0; i < Length; i++ {
		if guess[i] == secret[i] {
			marks[i] = MarkHit
		} else {
			counts[secret[i]]++
		}
	}

	for i := 0; i < Length; i++ {
		if marks[i] == MarkHit {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			marks[i] = MarkPresent
			counts[c]--
		}
	}
	return FromMarks(marks)
}
