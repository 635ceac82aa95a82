package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hrosb/memory/internal/httpserver"
	"github.com/hrosb/memory/internal/score"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	backend := getEnv("SCORES_BACKEND", "file")
	store, err := openStore(backend)
	if err != nil {
		log.Fatal().Err(err).Str("backend", backend).Msg("failed to open score store")
	}
	defer func() { _ = store.Close() }()

	if err := seedSampleScores(context.Background(), store); err != nil {
		log.Warn().Err(err).Msg("failed to seed sample scores")
	}

	srv := httpserver.New(store)
	port := getEnv("PORT", "8080")
	log.Info().Str("port", port).Str("backend", backend).Msg("starting memory-server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore selects the leaderboard backend at startup. Both implement
// the same contract; nothing downstream branches on the choice.
func openStore(backend string) (score.Store, error) {
	switch backend {
	case "file":
		return score.NewFileStore(getEnv("SCORES_FILE", "data/scores.json")), nil
	case "sqlite":
		db, err := openDB(getEnv("DATABASE_PATH", "data/memory.db"))
		if err != nil {
			return nil, err
		}
		if err := migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return score.NewSQLStore(db), nil
	default:
		return nil, errUnknownBackend(backend)
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
