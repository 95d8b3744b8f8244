package main

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-assist/internal/config"
	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/words"
)

func testLists(t *testing.T) *words.Lists {
	t.Helper()
	lists, err := words.New([]string{"crane", "crate", "salet", "slate", "trace"}, nil)
	require.NoError(t, err)
	return lists
}

func newTestPlayer(t *testing.T, input string) (*player, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &player{
		in:         bufio.NewScanner(strings.NewReader(input)),
		out:        &out,
		lists:      testLists(t),
		cache:      feedback.NewCache(),
		firstGuess: "salet",
		threshold:  20,
		topK:       3,
		workers:    2,
	}, &out
}

func TestPlayer_Solves(t *testing.T) {
	// secret "crate": salet scores BYBYY, leaving crate and trace.
	input := strings.Join([]string{
		"",      // default opener
		"bybyy", // feedback
		"zzzzz", // not a word
		"crate",
		"GGX", // malformed
		"crate",
		"GGGGG",
	}, "\n") + "\n"
	p, out := newTestPlayer(t, input)

	require.NoError(t, p.run())
	text := out.String()
	assert.Contains(t, text, "Remaining possible answers: 5")
	assert.Contains(t, text, "Remaining possible answers: 2")
	assert.Contains(t, text, "Top suggested guesses:\n1. crate (Entropy: 1.0000)\n2. trace (Entropy: 1.0000)\n")
	assert.Contains(t, text, "Guess not in allowed word list.")
	assert.Contains(t, text, "Invalid feedback.")
	assert.Contains(t, text, "The answer is: crate")
	assert.NotContains(t, text, "No possible words remaining")
}

func TestPlayer_Contradiction(t *testing.T) {
	p, out := newTestPlayer(t, "crane\nGGGGB\n")

	require.NoError(t, p.run())
	assert.Contains(t, out.String(), "No possible words remaining. Check your inputs.")
}

func TestPlayer_EndOfInput(t *testing.T) {
	p, out := newTestPlayer(t, "salet\n")

	require.NoError(t, p.run())
	assert.Contains(t, out.String(), "Enter feedback")
}

func TestPrintFeedback(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printFeedback(&out, "ABBEY", "embed"))
	assert.True(t, strings.HasSuffix(out.String(), "  BBGGB\n"))
	assert.Contains(t, out.String(), "\033[42m", "hits are drawn on green tiles")

	assert.Error(t, printFeedback(&out, "abc", "embed"))
	assert.Error(t, printFeedback(&out, "abbey", "toolong"))
}

func TestSimulate(t *testing.T) {
	lists := testLists(t)
	cache := feedback.NewCache()
	r := solver.NewRanker(cache, solver.WithWorkers(2))

	calls := 0
	results, err := simulate(lists, cache, r, lists.Answers, solver.Policy{FirstGuess: "salet", Threshold: 20}, false, func() { calls++ })
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, 5, calls)
	for _, res := range results {
		assert.Equal(t, solver.StatusSolved, res.Status, res.Secret)
		assert.Equal(t, res.Secret, res.Answer)
	}

	sum := summarize(results)
	assert.Equal(t, 5, sum.Games)
	assert.Equal(t, 5, sum.Solved)
	assert.Empty(t, sum.Failed)
	assert.Equal(t, 1, sum.Spread[1], "salet is solved by the opener")

	var out bytes.Buffer
	printSummary(&out, sum)
	assert.Contains(t, out.String(), "solved 5/5")

	_, err = simulate(lists, cache, r, []string{"nope"}, solver.Policy{}, false, nil)
	assert.Error(t, err)
}

func TestSimulate_AllowedOnlySecret(t *testing.T) {
	lists, err := words.New([]string{"crane", "crate", "salet", "slate", "trace"}, []string{"roate"})
	require.NoError(t, err)
	cache := feedback.NewCache()
	r := solver.NewRanker(cache, solver.WithWorkers(2))
	policy := solver.Policy{FirstGuess: "salet", Threshold: 20}

	results, err := simulate(lists, cache, r, []string{"roate"}, policy, false, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, solver.StatusSolved, results[0].Status)
	assert.Equal(t, "roate", results[0].Answer)

	results, err = simulate(lists, cache, r, []string{"roate"}, policy, true, nil)
	require.NoError(t, err)
	assert.Equal(t, solver.StatusContradiction, results[0].Status, "roate is not an answer")
}

func TestSummarize_Failures(t *testing.T) {
	sum := summarize([]solver.Result{
		{Secret: "crane", Status: solver.StatusSolved, Guesses: 2},
		{Secret: "crate", Status: solver.StatusSolved, Guesses: 4},
		{Secret: "zonal", Status: solver.StatusContradiction, Guesses: 1},
	})
	assert.Equal(t, 3, sum.Games)
	assert.Equal(t, 2, sum.Solved)
	assert.Equal(t, []string{"zonal"}, sum.Failed)
	assert.InDelta(t, 3.0, sum.Average, 1e-9)
	assert.Equal(t, 4, sum.Worst)
}

func TestCacheSnapshotRoundTrip(t *testing.T) {
	c := config.Default()
	c.CacheFile = filepath.Join(t.TempDir(), "feedback.gob")

	_, cache, err := loadSolverData(c)
	require.NoError(t, err, "a missing snapshot is not an error")
	assert.Zero(t, cache.Len())

	cache.Feedback("crane", "salet")
	cache.Feedback("salet", "crane")
	saveCache(c, cache)

	_, warmed, err := loadSolverData(c)
	require.NoError(t, err)
	assert.Equal(t, 2, warmed.Len())
	code, ok := warmed.Lookup("crane", "salet")
	assert.True(t, ok)
	assert.Equal(t, feedback.Compute("crane", "salet"), code)
}
