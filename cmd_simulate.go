// cmd_simulate.go
//
// Lets the solver play against known secrets: the opener first, then the top
// ranked guess every turn. With --all it plays every answer and reports how
// the strategy did overall.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/words"
)

var (
	simFirst    string
	simMaxTurns int
	simAll      bool
	simJSON     bool

	simulateCmd = &cobra.Command{
		Use:   "simulate [SECRET...]",
		Short: "Let the solver play against the given secrets (or every answer with --all)",
		RunE:  runSimulate,
	}
)

func init() {
	simulateCmd.Flags().StringVar(&simFirst, "first", "", "opening guess (default FIRST_GUESS)")
	simulateCmd.Flags().IntVar(&simMaxTurns, "max-turns", 10, "give up after this many guesses")
	simulateCmd.Flags().BoolVar(&simAll, "all", false, "play every answer in the list")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "print results as JSON")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	lists, cache, err := loadSolverData(cfg)
	if err != nil {
		return err
	}
	defer saveCache(cfg, cache)

	secrets := args
	if simAll {
		secrets = lists.Answers
	}
	if len(secrets) == 0 {
		return errors.New("simulate: give at least one SECRET or --all")
	}

	policy := solver.Policy{FirstGuess: simFirst, Threshold: cfg.PoolThreshold, MaxTurns: simMaxTurns}
	if policy.FirstGuess == "" {
		policy.FirstGuess = cfg.FirstGuess
	}
	ranker := solver.NewRanker(cache, solver.WithWorkers(cfg.Workers))

	var bar *progressbar.ProgressBar
	if simAll {
		bar = progressbar.NewOptions(len(secrets),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	results, err := simulate(lists, cache, ranker, secrets, policy, cfg.AnswersOnly, func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if simJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if !simAll {
		for _, res := range results {
			printResult(out, res)
		}
	}
	printSummary(out, summarize(results))
	return nil
}

// simulate solves every secret in order. Secrets that fail (unknown word,
// turn limit, contradiction) are reported in their Result, not as errors;
// only invalid secrets abort the run.
func simulate(lists *words.Lists, cache *feedback.Cache, r *solver.Ranker, secrets []string, p solver.Policy, answersOnly bool, done func()) ([]solver.Result, error) {
	results := make([]solver.Result, 0, len(secrets))
	for _, secret := range secrets {
		s, err := solver.NewSessionWithSecret(lists, cache, secret, solver.AnswersOnly(answersOnly))
		if err != nil {
			return nil, fmt.Errorf("secret %q: %w", secret, err)
		}
		res, err := solver.Solve(s, r, p)
		if err != nil && !errors.Is(err, solver.ErrTurnLimit) && !errors.Is(err, solver.ErrContradiction) {
			return nil, err
		}
		results = append(results, res)
		if done != nil {
			done()
		}
	}
	return results, nil
}

func printResult(out io.Writer, res solver.Result) {
	fmt.Fprintf(out, "\n%s:\n", res.Secret)
	for _, t := range res.Turns {
		fmt.Fprintf(out, "  %s  %4d left\n", t.Code.ColoredWord(t.Guess), t.Remaining)
	}
	switch res.Status {
	case solver.StatusSolved:
		fmt.Fprintf(out, "  solved in %d\n", res.Guesses)
	default:
		fmt.Fprintf(out, "  %s after %d\n", res.Status, res.Guesses)
	}
}

// summary aggregates simulation results.
type summary struct {
	Games   int
	Solved  int
	Failed  []string
	Average float64 // guesses per solved game
	Worst   int
	Spread  map[int]int // guesses -> games
}

func summarize(results []solver.Result) summary {
	sum := summary{Games: len(results), Spread: map[int]int{}}
	total := 0
	for _, res := range results {
		if res.Status != solver.StatusSolved {
			sum.Failed = append(sum.Failed, res.Secret)
			continue
		}
		sum.Solved++
		total += res.Guesses
		sum.Spread[res.Guesses]++
		sum.Worst = max(sum.Worst, res.Guesses)
	}
	if sum.Solved > 0 {
		sum.Average = float64(total) / float64(sum.Solved)
	}
	return sum
}

func printSummary(out io.Writer, s summary) {
	fmt.Fprintf(out, "\nsolved %d/%d, average %.3f guesses, worst %d\n", s.Solved, s.Games, s.Average, s.Worst)
	for n := 1; n <= s.Worst; n++ {
		if s.Spread[n] > 0 {
			fmt.Fprintf(out, "  %2d: %d\n", n, s.Spread[n])
		}
	}
	if len(s.Failed) > 0 {
		fmt.Fprintf(out, "failed: %v\n", s.Failed)
	}
}
