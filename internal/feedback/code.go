// internal/feedback/code.go
//
// Feedback code type shared by the engine, the solver and the HTTP layer.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Code: the five marks of one guess packed as a base-3 number.
//
// Notes:
//   - The first position is the most significant digit, so codes sort the
//     same way their G/Y/B strings do when read as base-3 numbers.
//   - There are 3^5 = 243 distinct codes; Code fits in a uint8.

package feedback

import (
	"errors"
	"strings"
)

// Length is the number of letters in every word the engine accepts.
const Length = 5

// NumCodes is the number of distinct feedback codes (3^Length).
const NumCodes = 243

// Mark represents the evaluation result for a single letter in a guess.
type Mark uint8

const (
	MarkMiss    Mark = iota // letter is not in the secret (gray, "B")
	MarkPresent             // letter is in the secret at another position (yellow, "Y")
	MarkHit                 // letter is correct and in the correct position (green, "G")
)

// Code is a complete feedback pattern for one guess.
type Code uint8

// AllHit is the code of a guess that equals the secret.
const AllHit Code = NumCodes - 1

// ErrMalformed is returned by Parse for strings that are not exactly five
// G/Y/B symbols.
var ErrMalformed = errors.New("feedback: malformed code")

// FromMarks packs five marks into a Code.
func FromMarks(marks [Length]Mark) Code {
	var c uint8
	for _, m := range marks {
		c = c*3 + uint8(m)
	}
	return Code(c)
}

// Marks unpacks the code into per-position marks.
func (c Code) Marks() [Length]Mark {
	var out [Length]Mark
	v := uint8(c)
	for i := Length - 1; i >= 0; i-- {
		out[i] = Mark(v % 3)
		v /= 3
	}
	return out
}

// Parse reads a code written as five of G (hit), Y (present) and B (miss).
// Lowercase letters are accepted.
func Parse(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != Length {
		return 0, ErrMalformed
	}
	var marks [Length]Mark
	for i := 0; i < Length; i++ {
		switch s[i] {
		case 'G':
			marks[i] = MarkHit
		case 'Y':
			marks[i] = MarkPresent
		case 'B':
			marks[i] = MarkMiss
		default:
			return 0, ErrMalformed
		}
	}
	return FromMarks(marks), nil
}

// String renders the code as G/Y/B letters, e.g. "GYBBG".
func (c Code) String() string {
	var b strings.Builder
	b.Grow(Length)
	for _, m := range c.Marks() {
		b.WriteByte(m.Symbol())
	}
	return b.String()
}

// Symbol returns the G/Y/B letter for a mark.
func (m Mark) Symbol() byte {
	switch m {
	case MarkHit:
		return 'G'
	case MarkPresent:
		return 'Y'
	default:
		return 'B'
	}
}

// Name returns the JSON-friendly name of a mark.
func (m Mark) Name() string {
	switch m {
	case MarkHit:
		return "hit"
	case MarkPresent:
		return "present"
	default:
		return "miss"
	}
}

// ColoredWord displays a word with ANSI colored tiles based on the code.
// Words that are not Length letters are returned unchanged.
func (c Code) ColoredWord(word string) string {
	if len(word) != Length {
		return word
	}

	const (
		reset    = "\033[0m"
		grayBg   = "\033[48;5;236m\033[38;5;255m" // gray background, white text
		yellowBg = "\033[43m\033[30m"             // yellow background, black text
		greenBg  = "\033[42m\033[30m"             // green background, black text
	)

	upper := strings.ToUpper(word)
	var b strings.Builder
	for i, m := range c.Marks() {
		switch m {
		case MarkMiss:
			b.WriteString(grayBg)
		case MarkPresent:
			b.WriteString(yellowBg)
		case MarkHit:
			b.WriteString(greenBg)
		}
		b.WriteByte(' ')
		b.WriteByte(upper[i])
		b.WriteByte(' ')
		b.WriteString(reset)
	}
	return b.String()
}
