// cmd_serve.go

package main

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-assist/assets"
	"github.com/robalobadob/wordle-assist/internal/db"
	"github.com/robalobadob/wordle-assist/internal/httpserver"
	"github.com/robalobadob/wordle-assist/internal/solver"
	"github.com/robalobadob/wordle-assist/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (sessions, daily puzzle, accounts)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lists, cache, err := loadSolverData(cfg)
	if err != nil {
		return err
	}
	defer saveCache(cfg, cache)

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn, assets.Migrations()); err != nil {
		return err
	}

	ranker := solver.NewRanker(cache, solver.WithWorkers(cfg.Workers))
	srv := httpserver.New(cfg, lists, ranker, store.NewMemoryStore(), conn)

	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Int("workers", ranker.Workers()).
		Int("pool_threshold", cfg.PoolThreshold).
		Msg("starting wordle-assist server")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
