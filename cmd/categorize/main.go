package main

import (
	"context"
	"time"

	"github.com/shraddhagadale/SpendSense/internal/categories"
	"github.com/shraddhagadale/SpendSense/internal/config"
	"github.com/shraddhagadale/SpendSense/internal/llm"
	"github.com/shraddhagadale/SpendSense/internal/logger"
	"github.com/shraddhagadale/SpendSense/internal/storage"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	pool, err := storage.NewPool(ctx, cfg.Database.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	repo := storage.NewTransactionRepository(pool)
	txns, err := repo.ListUncategorized(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list uncategorized transactions")
	}
	if len(txns) == 0 {
		log.Info().Msg("Nothing to categorize")
		return
	}

	categorizer, err := llm.NewCategorizer(ctx, cfg.Categorizer.Model, categories.All(), cfg.Categorizer.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create categorizer")
	}

	log.Info().Int("count", len(txns)).Msg("Categorizing transactions")

	updated, failed := 0, 0
	for i, tx := range txns {
		// Respect the model's rate limits between requests.
		if i > 0 {
			time.Sleep(cfg.Categorizer.RateLimit)
		}

		category, err := categorizer.Categorize(ctx, tx.Description, tx.Amount)
		if err != nil {
			log.Warn().Err(err).Int64("id", tx.ID).Str("description", tx.Description).Msg("Categorization failed")
			failed++
			continue
		}
		if err := repo.UpdateCategory(ctx, tx.ID, category); err != nil {
			log.Fatal().Err(err).Int64("id", tx.ID).Msg("Failed to store category")
		}
		updated++
	}

	log.Info().Int("updated", updated).Int("failed", failed).Msg("Categorization completed")
}
