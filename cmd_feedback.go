// cmd_feedback.go

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/words"
)

var feedbackCmd = &cobra.Command{
	Use:     "feedback GUESS SECRET",
	Short:   "Show the feedback GUESS gets when the answer is SECRET",
	Example: "  wordle-assist feedback abbey embed",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFeedback(cmd.OutOrStdout(), args[0], args[1])
	},
}

// printFeedback writes the colored tiles and the G/Y/B string.
func printFeedback(out io.Writer, guess, secret string) error {
	guess, err := words.Normalize(guess)
	if err != nil {
		return fmt.Errorf("guess: %w", err)
	}
	secret, err = words.Normalize(secret)
	if err != nil {
		return fmt.Errorf("secret: %w", err)
	}
	code := feedback.Compute(guess, secret)
	_, err = fmt.Fprintf(out, "%s  %s\n", code.ColoredWord(guess), code)
	return err
}
