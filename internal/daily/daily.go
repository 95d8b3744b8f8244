// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
//
// The secret for a date is answers[HMAC-SHA256(salt, "YYYY-MM-DD") mod len(answers)],
// so every server sharing a salt and an answer list agrees on the puzzle
// without storing it.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Puzzle identifies one day's secret.
type Puzzle struct {
	Date   string `json:"date"`
	Index  int    `json:"index"`
	Secret string `json:"-"`
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns the puzzle index for a date, in [0, answersLen).
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// For returns the puzzle of the day containing t. ok is false when answers
// is empty.
func For(t time.Time, salt string, answers []string) (p Puzzle, ok bool) {
	p.Date = DateKey(t)
	if len(answers) == 0 {
		return p, false
	}
	p.Index = WordIndex(t, salt, len(answers))
	p.Secret = answers[p.Index]
	return p, true
}
