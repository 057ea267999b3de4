package main

import (
	"context"
	"time"

	"github.com/shraddhagadale/SpendSense/internal/config"
	"github.com/shraddhagadale/SpendSense/internal/logger"
	"github.com/shraddhagadale/SpendSense/internal/storage"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	pool, err := storage.NewPool(ctx, cfg.Database.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := storage.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Schema is up to date")
}
