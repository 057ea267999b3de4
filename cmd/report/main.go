package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/shraddhagadale/SpendSense/internal/config"
	"github.com/shraddhagadale/SpendSense/internal/logger"
	"github.com/shraddhagadale/SpendSense/internal/storage"
)

func main() {
	log := logger.New()

	month := flag.String("month", "", "Month to report on as YYYY-MM (default: latest month with data)")
	top := flag.Int("top", 5, "Number of largest transactions to show")
	flag.Parse()

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

	repo := storage.NewTransactionRepository(pool)

	months, err := repo.AvailableMonths(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list months")
	}
	if len(months) == 0 {
		log.Fatal().Msg("No transactions in the database, run ingest first")
	}

	selected := *month
	if selected == "" {
		selected = months[len(months)-1]
	}
	when, err := time.Parse("2006-01", selected)
	if err != nil {
		log.Fatal().Str("month", selected).Msg("Invalid month, expected YYYY-MM")
	}
	year, mon := when.Year(), int(when.Month())

	fmt.Println("Available months:")
	for _, m := range months {
		marker := " "
		if m == selected {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, m)
	}

	total, count, err := repo.MonthlyTotal(ctx, year, mon)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute monthly total")
	}
	fmt.Printf("\n%s: %d transactions, %.2f total\n", selected, count, total)

	catTotals, err := repo.CategoryTotals(ctx, year, mon)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute category totals")
	}
	fmt.Println("\nBy category:")
	for _, ct := range catTotals {
		pct := 0.0
		if total != 0 {
			pct = ct.Total / total * 100
		}
		fmt.Printf("- %-20s %10.2f  (%5.1f%%)\n", ct.Category, ct.Total, pct)
	}

	merchTotals, err := repo.MerchantTotals(ctx, year, mon)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute merchant totals")
	}
	fmt.Println("\nBy merchant:")
	for _, mt := range merchTotals {
		fmt.Printf("- %-30s %10.2f\n", mt.Merchant, mt.Total)
	}

	topTxns, err := repo.TopTransactions(ctx, year, mon, *top)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list top transactions")
	}
	fmt.Printf("\nTop %d transactions:\n", *top)
	for _, tx := range topTxns {
		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}
		fmt.Printf("%s | %-15s | %10.2f | %s\n", tx.PostedDate.Format("2006-01-02"), category, tx.Amount, tx.Description)
	}
}
