// main.go
//
// wordle-assist: entropy-ranked guess suggestions for five-letter word
// puzzles, as an interactive CLI and as an HTTP service.
//
// Commands:
//   - play      interactive assistant (type your guess and the colors you got)
//   - feedback  show the feedback a guess gets against a secret
//   - simulate  let the solver play against known secrets
//   - serve     run the HTTP API
//
// Configuration comes from config.Load (defaults, CONFIG_FILE, .env, env).

package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-assist/internal/config"
	"github.com/robalobadob/wordle-assist/internal/feedback"
	"github.com/robalobadob/wordle-assist/internal/words"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:           "wordle-assist",
		Short:         "Suggests the most informative next guess for five-letter word puzzles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			setupLogging(cfg.LogLevel, cmd.Name() == serveCmd.Name())
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(playCmd, feedbackCmd, simulateCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordle-assist failed")
	}
}

// setupLogging sets the global level and picks console output for the
// interactive commands and JSON for the server.
func setupLogging(level string, jsonOutput bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !jsonOutput {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// loadSolverData loads the word lists and the feedback cache, warming the
// cache from CACHE_FILE when one is configured and present.
func loadSolverData(c config.Config) (*words.Lists, *feedback.Cache, error) {
	lists, err := words.Load(c.AnswersFile, c.AllowedFile)
	if err != nil {
		return nil, nil, err
	}
	a, g := lists.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	cache := feedback.NewCache()
	if c.CacheFile == "" {
		return lists, cache, nil
	}
	f, err := os.Open(c.CacheFile)
	if errors.Is(err, fs.ErrNotExist) {
		return lists, cache, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	if err := cache.Load(f); err != nil {
		log.Warn().Err(err).Str("file", c.CacheFile).Msg("ignoring unreadable cache snapshot")
		return lists, cache, nil
	}
	log.Debug().Int("entries", cache.Len()).Str("file", c.CacheFile).Msg("cache snapshot loaded")
	return lists, cache, nil
}

// saveCache writes the cache snapshot to CACHE_FILE, if configured.
func saveCache(c config.Config, cache *feedback.Cache) {
	if c.CacheFile == "" {
		return
	}
	f, err := os.Create(c.CacheFile)
	if err != nil {
		log.Warn().Err(err).Msg("create cache snapshot")
		return
	}
	defer f.Close()
	if err := cache.Save(f); err != nil {
		log.Warn().Err(err).Msg("write cache snapshot")
		return
	}
	log.Debug().Int("entries", cache.Len()).Str("file", c.CacheFile).Msg("cache snapshot saved")
}
