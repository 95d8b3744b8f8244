// internal/words/words.go
//
// Word list management for the solver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to embedded defaults.
//   - Maintain a set for quick allowed-guess lookups (answers ∪ guesses).
//   - Validate words (exactly 5 lowercase a–z letters).
//
// Word Lists:
//   - "answers": the daily puzzle's secrets; the initial candidate set only
//                when answers_only is set.
//   - "allowed": valid guesses, the initial candidate set and the guess pool
//                for large candidate sets (always includes answers).
//
// Load behavior:
//   1. answersPath and allowedPath both set: answers from the first,
//      allowed guesses from the second.
//   2. Only allowedPath set: that file feeds both lists.
//   3. Only answersPath set: that file feeds both lists.
//   4. Neither set: embedded assets/answers.txt and assets/allowed.txt.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle-assist/assets"
)

// Length is the number of letters in a word.
const Length = 5

// ErrInvalidWord is returned for words that are not Length lowercase letters.
var ErrInvalidWord = errors.New("words: invalid word")

// ErrNoAnswers is returned when the answer list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Lists holds the loaded word lists. It is read-only after Load.
type Lists struct {
	Answers []string
	Allowed []string

	allowedSet map[string]struct{}
}

// Load reads the word lists as described in the package comment.
func Load(answersPath, allowedPath string) (*Lists, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	case answersPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		allowList = ansList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	return New(ansList, allowList)
}

// New builds Lists from in-memory slices. Invalid words are dropped,
// duplicates are removed keeping first occurrence, and every answer is
// appended to the allowed list if missing.
func New(answers, allowed []string) (*Lists, error) {
	l := &Lists{Answers: normalize(answers)}
	if len(l.Answers) == 0 {
		return nil, ErrNoAnswers
	}

	l.Allowed = normalize(append(append([]string{}, allowed...), l.Answers...))
	l.allowedSet = make(map[string]struct{}, len(l.Allowed))
	for _, w := range l.Allowed {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return readWords(f)
}

// readWords returns trimmed lowercase lines, skipping blanks and # comments.
func readWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// normalize lowercases, drops invalid words and de-duplicates preserving order.
func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if !Valid(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Valid reports whether w is exactly Length lowercase ASCII letters.
func Valid(w string) bool {
	if len(w) != Length {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// Normalize trims and lowercases w and checks it with Valid.
func Normalize(w string) (string, error) {
	w = strings.ToLower(strings.TrimSpace(w))
	if !Valid(w) {
		return "", fmt.Errorf("%q: %w", w, ErrInvalidWord)
	}
	return w, nil
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lists) Stats() (answersCount int, allowedCount int) {
	return len(l.Answers), len(l.Allowed)
}
