package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/shraddhagadale/SpendSense/internal/categories"
	"github.com/shraddhagadale/SpendSense/internal/config"
	"github.com/shraddhagadale/SpendSense/internal/export"
	"github.com/shraddhagadale/SpendSense/internal/extractor"
	"github.com/shraddhagadale/SpendSense/internal/gcs"
	"github.com/shraddhagadale/SpendSense/internal/llm"
	"github.com/shraddhagadale/SpendSense/internal/logger"
	"github.com/shraddhagadale/SpendSense/internal/pipeline"
	"github.com/shraddhagadale/SpendSense/internal/storage"
)

func main() {
	log := logger.New()

	input := flag.String("input", "", "Statement PDF: local path or gs://bucket/file.pdf")
	csvPath := flag.String("csv", "", "Also write the ingested transactions to this CSV file")
	noOCR := flag.Bool("no-ocr", false, "Disable the OCR fallback for scanned PDFs")
	flag.Parse()

	if *input == "" {
		log.Fatal().Msg("Error: --input is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("input", *input).Msg("Starting ingestion")

	pdfData, filename, err := readInput(ctx, *input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read statement")
	}

	pool, err := storage.NewPool(ctx, cfg.Database.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	fileHash := sha256.Sum256(pdfData)
	statements := storage.NewStatementRepository(pool)
	stmt, created, err := statements.Create(ctx, filename, hex.EncodeToString(fileHash[:]))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register statement")
	}
	if !created {
		log.Info().Str("filename", stmt.Filename).Msg("Statement already ingested, nothing to do")
		return
	}

	var ext pipeline.TextExtractor = extractor.NewAuto(cfg.Extractor.TessdataPrefix, cfg.Extractor.MinTextChars)
	if *noOCR {
		ext = &extractor.PDFText{}
	}

	var categorizer pipeline.Categorizer
	cat, err := llm.NewCategorizer(ctx, cfg.Categorizer.Model, categories.All(), cfg.Categorizer.Timeout)
	if err != nil {
		log.Warn().Err(err).Msg("Categorizer unavailable, transactions will be stored uncategorized")
	} else {
		categorizer = cat
	}

	store := &transactionStore{repo: storage.NewTransactionRepository(pool)}
	state := &pipeline.State{PDFBytes: pdfData, StatementID: &stmt.ID}
	p := pipeline.NewStatementIngestion(ext, categorizer, store)
	if err := p.Execute(ctx, state); err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	if err := statements.UpdateCount(ctx, stmt.ID, state.Result.Inserted); err != nil {
		log.Warn().Err(err).Msg("Failed to update statement transaction count")
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, state.Transactions); err != nil {
			log.Fatal().Err(err).Msg("Failed to write CSV")
		}
		log.Info().Str("path", *csvPath).Msg("CSV written")
	}

	log.Info().
		Int("parsed", state.Result.Parsed).
		Int("inserted", state.Result.Inserted).
		Int("duplicates", state.Result.Duplicates).
		Int("categorized", state.Result.Categorized).
		Msg("Ingestion completed")
}

// transactionStore adapts the Postgres repository to the pipeline's store
// interface.
type transactionStore struct {
	repo *storage.TransactionRepository
}

func (s *transactionStore) InsertIfNew(ctx context.Context, tx *pipeline.Transaction) (bool, error) {
	return s.repo.InsertIfNew(ctx, &storage.Transaction{
		PostedDate:  tx.PostedDate,
		Amount:      tx.Amount,
		Credit:      tx.Credit,
		Description: tx.Description,
		Merchant:    tx.Merchant,
		Category:    tx.Category,
		StatementID: tx.StatementID,
		DedupeHash:  tx.DedupeHash,
	})
}

// readInput loads the statement bytes from a local path or a GCS URI.
func readInput(ctx context.Context, input string) ([]byte, string, error) {
	if gcs.IsURI(input) {
		data, err := gcs.Fetch(ctx, input)
		if err != nil {
			return nil, "", err
		}
		return data, gcs.Filename(input), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", err
	}
	return data, filepath.Base(input), nil
}

func writeCSV(path string, txns []*pipeline.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteTransactions(f, txns)
}
