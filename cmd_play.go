// cmd_play.go
//
// Interactive assistant. Each turn:
//   1. show how many answers are still possible (and, after the first turn,
//      the best guesses by expected information),
//   2. read the guess the player made (empty means the configured opener),
//   3. read the colors the game showed (G = green, Y = yellow, B = gray),
//   4. narrow the candidates, until one word or none is left.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/words"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive assistant: enter each guess and its feedback, get ranked suggestions",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	lists, cache, err := loadSolverData(cfg)
	if err != nil {
		return err
	}
	defer saveCache(cfg, cache)

	p := &player{
		in:          bufio.NewScanner(cmd.InOrStdin()),
		out:         cmd.OutOrStdout(),
		progress:    os.Stderr,
		lists:       lists,
		cache:       cache,
		firstGuess:  cfg.FirstGuess,
		threshold:   cfg.PoolThreshold,
		topK:        cfg.TopK,
		workers:     cfg.Workers,
		answersOnly: cfg.AnswersOnly,
	}
	return p.run()
}

// player runs the interactive loop over arbitrary input and output.
type player struct {
	in       *bufio.Scanner
	out      io.Writer
	progress io.Writer // progress bar destination; nil disables it

	lists       *words.Lists
	cache       *feedback.Cache
	firstGuess  string
	threshold   int
	topK        int
	workers     int
	answersOnly bool
}

// run plays until the session finishes or input runs out.
func (p *player) run() error {
	s := solver.NewSession(p.lists, p.cache, solver.AnswersOnly(p.answersOnly))
	for {
		fmt.Fprintf(p.out, "\nRemaining possible answers: %d\n", s.Remaining())
		if len(s.History) > 0 {
			fmt.Fprintln(p.out, "Calculating entropy in parallel...")
			fmt.Fprintln(p.out, "Top suggested guesses:")
			for i, gs := range p.suggest(s) {
				fmt.Fprintf(p.out, "%d. %s (Entropy: %.4f)\n", i+1, gs.Guess, gs.Entropy)
			}
		}

		guess, ok := p.prompt(fmt.Sprintf("Enter your guess (default: '%s'): ", p.firstGuess))
		if !ok {
			return p.in.Err()
		}
		if guess == "" {
			guess = p.firstGuess
		}
		guess, err := words.Normalize(guess)
		if err != nil || !p.lists.IsAllowed(guess) {
			fmt.Fprintln(p.out, "Guess not in allowed word list.")
			continue
		}

		raw, ok := p.prompt("Enter feedback (G = green, Y = yellow, B = gray): ")
		if !ok {
			return p.in.Err()
		}
		code, err := feedback.Parse(raw)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid feedback.")
			continue
		}
		fmt.Fprintln(p.out, code.ColoredWord(guess))

		status, err := s.Apply(guess, code)
		if err != nil && !errors.Is(err, solver.ErrContradiction) {
			return err
		}
		switch status {
		case solver.StatusSolved:
			answer, _ := s.Answer()
			fmt.Fprintf(p.out, "\nThe answer is: %s\n", answer)
			return nil
		case solver.StatusContradiction:
			fmt.Fprintln(p.out, "\nNo possible words remaining. Check your inputs.")
			return nil
		}
	}
}

// prompt writes msg and reads one trimmed line. ok is false at end of input.
func (p *player) prompt(msg string) (string, bool) {
	fmt.Fprint(p.out, msg)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// suggest ranks the session's guess pool, drawing a progress bar while the
// workers run.
func (p *player) suggest(s *solver.Session) []solver.GuessScore {
	opts := []solver.Option{solver.WithWorkers(p.workers)}
	pool := solver.GuessPool(p.lists.Allowed, s.Candidates, p.threshold)
	if p.progress != nil {
		bar := progressbar.NewOptions(len(pool),
			progressbar.OptionSetWriter(p.progress),
			progressbar.OptionSetDescription("ranking"),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Close()
		opts = append(opts, solver.WithProgress(func() { _ = bar.Add(1) }))
	}
	r := solver.NewRanker(p.cache, opts...)
	return solver.Top(r.Rank(pool, s.Candidates), p.topK)
}
