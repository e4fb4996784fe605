// Command redoodle-devserver serves the puzzle API locally with fake image
// generation, so the terminal client can be played end to end.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/redoodle/internal/catalog"
	"github.com/robalobadob/redoodle/internal/config"
	"github.com/robalobadob/redoodle/internal/httpserver"
	"github.com/robalobadob/redoodle/internal/logging"
	"github.com/robalobadob/redoodle/internal/store"
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

	cat, err := catalog.Load(cfg.DevServer.PuzzlesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle catalog")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, cat, httpserver.Options{
		DailySalt:    cfg.DevServer.DailySalt,
		ClientOrigin: cfg.DevServer.ClientOrigin,
	})
	port := cfg.DevServer.Port
	log.Info().Str("port", port).Int("puzzles", cat.Len()).Msg("starting redoodle-devserver")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
