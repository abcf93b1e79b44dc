// main.go
//
// Entry point for the Wordle board service.
//   - Loads config from the environment (.env in development).
//   - Loads the word bank, opens SQLite and applies migrations.
//   - Serves the board API until SIGINT/SIGTERM.
//
// `board hashkey <key>` prints the bcrypt hash to use as ADMIN_KEY_HASH.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/board/assets"
	"github.com/robalobadob/wordle/apps/board/internal/config"
	"github.com/robalobadob/wordle/apps/board/internal/daily"
	"github.com/robalobadob/wordle/apps/board/internal/database"
	"github.com/robalobadob/wordle/apps/board/internal/httpserver"
	"github.com/robalobadob/wordle/apps/board/internal/stats"
	"github.com/robalobadob/wordle/apps/board/internal/store"
	"github.com/robalobadob/wordle/apps/board/internal/words"
)

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hashkey" {
		h, err := httpserver.HashAdminKey(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	cfg := config.Load()
	setupLogging(cfg)

	bank, err := words.LoadConfigured(cfg.AllowedFile, cfg.AnswersFile, words.WithLength(cfg.WordLength))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	sol, valid := bank.Stats()
	log.Info().Int("solutions", sol).Int("valid", valid).Int("length", bank.WordLength()).Msg("word bank loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	sessions := store.NewMemoryStore()
	go sweep(ctx, sessions, cfg.SessionTTL)

	srv := httpserver.New(httpserver.Options{
		Bank:         bank,
		Sessions:     sessions,
		Daily:        daily.NewStore(db),
		Stats:        stats.NewStore(db),
		MaxAttempts:  cfg.MaxAttempts,
		JWTSecret:    cfg.JWTSecret,
		JWTExpires:   cfg.JWTExpires,
		DailySalt:    cfg.DailySalt,
		ClientOrigin: cfg.ClientOrigin,
		AdminKeyHash: cfg.AdminKeyHash,
		SecureCookie: cfg.SecureCookie,
	})

	log.Info().Str("port", cfg.Port).Msg("starting board server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("shut down cleanly")
}

func setupLogging(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// sweepInterval checks four times per TTL, but never more than once a second.
func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/4, time.Second)
}

// sweep drops sessions idle for longer than ttl.
func sweep(ctx context.Context, s store.Store, ttl time.Duration) {
	t := time.NewTicker(sweepInterval(ttl))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(ttl); n > 0 {
				log.Debug().Int("evicted", n).Int("live", s.Len()).Msg("session sweep")
			}
		}
	}
}
