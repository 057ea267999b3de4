package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS statements (
		id UUID PRIMARY KEY,
		filename TEXT NOT NULL,
		file_hash CHAR(64) NOT NULL UNIQUE,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		transaction_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		posted_date DATE NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		credit BOOLEAN NOT NULL DEFAULT FALSE,
		description TEXT NOT NULL,
		merchant VARCHAR(255),
		category VARCHAR(50),
		statement_id UUID REFERENCES statements(id) ON DELETE CASCADE,
		dedupe_hash CHAR(64) NOT NULL UNIQUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_posted_date ON transactions (posted_date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (category)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions (merchant)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_statement ON transactions (statement_id)`,
}

// Migrate creates the schema. Safe to run repeatedly.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("storage: migrate: %w", err)
		}
	}
	return nil
}
