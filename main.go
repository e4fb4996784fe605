package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/redoodle/internal/api"
	"github.com/robalobadob/redoodle/internal/carousel"
	"github.com/robalobadob/redoodle/internal/config"
	"github.com/robalobadob/redoodle/internal/identity"
	"github.com/robalobadob/redoodle/internal/logging"
	"github.com/robalobadob/redoodle/internal/puzzle"
	"github.com/robalobadob/redoodle/internal/session"
	"github.com/robalobadob/redoodle/internal/state"
)

func main() {
	_ = godotenv.Load()
	cfgPath := flag.String("config", os.Getenv("REDOODLE_CONFIG"), "config file (.toml, .yaml or .json)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	kv, closeKV := openIdentityStore(cfg)
	defer closeKV()

	client, err := api.New(cfg.APIBaseURL, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("api client")
	}

	st := state.New(puzzle.Loading(puzzle.DefaultGuessesTotal))
	sess := session.New(client, identity.NewProvider(kv), st)
	term := newTerminal(os.Stdin, os.Stdout, st, sess, carousel.New(st))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Str("api", cfg.APIBaseURL).Msg("starting redoodle")
	if err := term.run(ctx); err != nil {
		log.Error().Err(err).Msg("terminal exited")
	}
}

// openIdentityStore opens the configured KV. A SQLite failure degrades to an
// in-memory store so the game stays playable for this run.
func openIdentityStore(cfg *config.Config) (identity.KV, func()) {
	if cfg.IdentityStore == config.IdentityMemory {
		return identity.NewMemory(), func() {}
	}
	db, err := identity.OpenSQLite(cfg.IdentityDBPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.IdentityDBPath).Msg("identity store unavailable; player id will not persist")
		return identity.NewMemory(), func() {}
	}
	return db, func() { _ = db.Close() }
}
