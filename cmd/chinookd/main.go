package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"chinook/internal/app/catalog"
	"chinook/internal/app/favorites"
	"chinook/internal/app/playlists"
	"chinook/internal/httpapi"
	"chinook/internal/middleware"
	"chinook/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg)

	db, err := openDatabase(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	dataStore := store.New(db)

	if err := bootstrapDemoData(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("bootstrap demo data")
	}

	catalogSvc := catalog.New(dataStore, logger.With().Str("component", "catalog").Logger())
	playlistSvc := playlists.New(dataStore, logger.With().Str("component", "playlists").Logger())
	favoriteSvc := favorites.New(dataStore, logger.With().Str("component", "favorites").Logger())

	srv := httpapi.New(catalogSvc, playlistSvc, favoriteSvc, []byte(cfg.JWTSecret))

	handler := middleware.RequestLogging(logger)(
		middleware.CORS(cfg.AllowedOrigins)(srv.Routes()),
	)

	logger.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.LogFormat == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}
