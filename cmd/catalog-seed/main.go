package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Clark-Hu/movie-catalog/internal/logging"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

func main() {
	var (
		data     = flag.String("data", "catalog-seed.json", "path to fixture file")
		dbURL    = flag.String("db", os.Getenv("DB_URL"), "postgres connection string (defaults to $DB_URL)")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := logging.New(logging.Config{Level: *logLevel, Format: "console"})

	file, err := os.Open(*data)
	if err != nil {
		logger.Fatal().Err(err).Msg("open fixture")
	}
	defer file.Close()

	fx, err := parseFixture(file)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse fixture")
	}
	if *dbURL == "" {
		logger.Fatal().Msg("a database URL is required (-db or DB_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.New(ctx, *dbURL, store.Options{MaxConns: 2, StatementCacheCapacity: -1, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer st.Close()

	res, err := seed(ctx, st, repository.New(st), fx)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed catalog")
	}
	logger.Info().
		Int("directors", res.Directors).
		Int("genres", res.Genres).
		Int("movies", res.Movies).
		Msg("catalog seeded")
}
